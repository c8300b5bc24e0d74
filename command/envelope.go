package command

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nstehr/skirmish/model"
)

// Envelope is the JSON form of a command, used for scripted orders.
// Data is kept raw so decoding can be deferred to the concrete type.
type Envelope struct {
	Tick int             `json:"tick"`
	Team model.TeamID    `json:"team"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewEnvelope(tick int, team model.TeamID, cmd Command) (Envelope, error) {
	raw, err := json.Marshal(cmd)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal data: %w", err)
	}
	return Envelope{Tick: tick, Team: team, Type: cmd.Type(), Data: raw}, nil
}

// Decode unmarshals the payload into the command named by Type.
func (e Envelope) Decode() (Command, error) {
	var (
		cmd Command
		err error
	)
	switch e.Type {
	case TypeSelect:
		var c SelectCommand
		err = json.Unmarshal(e.Data, &c)
		cmd = c
	case TypeMove:
		var c MoveCommand
		err = json.Unmarshal(e.Data, &c)
		cmd = c
	case TypeAttack:
		var c AttackCommand
		err = json.Unmarshal(e.Data, &c)
		cmd = c
	case TypeMine:
		var c MineCommand
		err = json.Unmarshal(e.Data, &c)
		cmd = c
	case TypeProduce:
		var c ProduceCommand
		err = json.Unmarshal(e.Data, &c)
		cmd = c
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, e.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", e.Type, err)
	}
	return cmd, nil
}

// ReadScript reads one envelope per line. Blank lines are skipped.
func ReadScript(r io.Reader) ([]Envelope, error) {
	var out []Envelope
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, fmt.Errorf("script line %d: %w", line, err)
		}
		out = append(out, env)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return out, nil
}

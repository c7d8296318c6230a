package hud

import (
	"github.com/lixenwraith/argon-hud/model"
)

type targetKind uint8

const (
	targetInvalid targetKind = iota
	targetNone
	targetActor
	targetToken
)

// Target is what Bind attaches to: an actor, a token, or nothing
// The zero value is invalid; use ActorTarget, TokenTarget or NoTarget
type Target struct {
	kind  targetKind
	actor *model.Actor
	token *model.Token
}

// NoTarget detaches the HUD
var NoTarget = Target{kind: targetNone}

// ActorTarget binds an actor; its token is resolved best-effort
func ActorTarget(a *model.Actor) Target {
	return Target{kind: targetActor, actor: a}
}

// TokenTarget binds a token and its actor
func TokenTarget(t *model.Token) Target {
	return Target{kind: targetToken, token: t}
}

// IsNone reports whether the target detaches the HUD
func (t Target) IsNone() bool {
	return t.kind == targetNone
}

// resolve applies the binding rules:
//   - token: actor is the token's actor, possibly nil (reported by the caller)
//   - actor: token is the explicit token, else the parent, else the first active token, else none;
//     only tokens whose actor is the bound actor qualify
func (t Target) resolve() (*model.Actor, *model.Token, error) {
	switch t.kind {
	case targetToken:
		if t.token == nil {
			return nil, nil, ErrInvalidBindTarget
		}
		return t.token.Actor, t.token, nil

	case targetActor:
		a := t.actor
		if a == nil {
			return nil, nil, ErrInvalidBindTarget
		}
		candidates := append([]*model.Token{a.Token, a.Parent}, a.ActiveTokens...)
		for _, tok := range candidates {
			if tok == nil {
				continue
			}
			// Presence must belong to the bound actor; orphan tokens do not
			if tok.Actor == nil || !tok.Actor.Is(a) {
				continue
			}
			return a, tok, nil
		}
		return a, nil, nil
	}
	return nil, nil, ErrInvalidBindTarget
}

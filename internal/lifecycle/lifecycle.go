// Package lifecycle holds the item state machine and the role based
// authorization table consulted before any lifecycle edge is taken.
package lifecycle

import (
	"fmt"
	"strings"

	"lostfound-registry/internal/models"
	"lostfound-registry/internal/registryerrors"
)

// Edge is one allowed move in the item state machine
type Edge struct {
	From models.ItemState
	To   models.ItemState
}

func (e Edge) String() string {
	return string(e.From) + "->" + string(e.To)
}

// ParseEdge reads the "FROM->TO" form used in configuration
func ParseEdge(s string) (Edge, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "->")
	if !ok {
		return Edge{}, fmt.Errorf("lifecycle: malformed edge %q", s)
	}
	e := Edge{
		From: models.ItemState(strings.ToUpper(strings.TrimSpace(from))),
		To:   models.ItemState(strings.ToUpper(strings.TrimSpace(to))),
	}
	if !Allowed(e.From, e.To) {
		return Edge{}, fmt.Errorf("lifecycle: edge %s: %w", e, registryerrors.ErrInvalidTransition)
	}
	return e, nil
}

var edges = map[models.ItemState][]models.ItemState{
	models.StateRegistrado: {models.StateEnAlmacen},
	models.StateEnAlmacen: {
		models.StateReclamado,
		models.StateSubasta,
		models.StateDonado,
		models.StateReciclado,
		models.StateDestruido,
	},
	models.StateReclamado: {models.StateEntregado},
	models.StateSubasta:   {models.StateEntregado},
}

// Allowed reports whether from->to is in the edge table
func Allowed(from, to models.ItemState) bool {
	for _, t := range edges[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Edges lists every edge of the state machine
func Edges() []Edge {
	order := []models.ItemState{models.StateRegistrado, models.StateEnAlmacen, models.StateReclamado, models.StateSubasta}
	var out []Edge
	for _, from := range order {
		for _, to := range edges[from] {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// ClaimSources are the states a confirmed match may claim an item from.
// Lost items never enter the warehouse, so REGISTRADO is accepted here
// even though the staff edge table does not list REGISTRADO->RECLAMADO.
var ClaimSources = []models.ItemState{models.StateRegistrado, models.StateEnAlmacen}

// CanClaim reports whether a confirmed match may move an item out of state s
func CanClaim(s models.ItemState) bool {
	for _, c := range ClaimSources {
		if c == s {
			return true
		}
	}
	return false
}

// Policy is the role -> allowed edge table supplied by configuration
type Policy struct {
	allowed map[models.Role]map[Edge]struct{}
}

// NewPolicy builds a policy. Edges outside the state machine are ignored.
func NewPolicy(table map[models.Role][]Edge) *Policy {
	p := &Policy{allowed: make(map[models.Role]map[Edge]struct{}, len(table))}
	for role, list := range table {
		set := make(map[Edge]struct{}, len(list))
		for _, e := range list {
			if Allowed(e.From, e.To) {
				set[e] = struct{}{}
			}
		}
		p.allowed[role] = set
	}
	return p
}

// DefaultPolicy lets staff and admins take every edge and citizens none
func DefaultPolicy() *Policy {
	all := Edges()
	return NewPolicy(map[models.Role][]Edge{
		models.RoleStaff: all,
		models.RoleAdmin: all,
	})
}

// Permits reports whether any of the actor's roles may take the edge
func (p *Policy) Permits(actor models.Actor, e Edge) bool {
	for _, r := range actor.Roles {
		if _, ok := p.allowed[r][e]; ok {
			return true
		}
	}
	return false
}

// Check validates an edge against the table and the actor's permissions
func (p *Policy) Check(actor models.Actor, from, to models.ItemState) error {
	e := Edge{From: from, To: to}
	if !Allowed(from, to) {
		return fmt.Errorf("lifecycle: %s: %w", e, registryerrors.ErrInvalidTransition)
	}
	if !p.Permits(actor, e) {
		return fmt.Errorf("lifecycle: user %q may not take %s: %w", actor.UserID, e, registryerrors.ErrUnauthorized)
	}
	return nil
}

// Edges derived for the composite operations
var (
	EdgeShelve   = Edge{From: models.StateRegistrado, To: models.StateEnAlmacen}
	EdgeClaim    = Edge{From: models.StateEnAlmacen, To: models.StateReclamado}
	EdgeAuction  = Edge{From: models.StateEnAlmacen, To: models.StateSubasta}
	EdgeHandover = Edge{From: models.StateSubasta, To: models.StateEntregado}
)

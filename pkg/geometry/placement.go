package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlacement is returned for placement strings outside the twelve
// supported values.
var ErrInvalidPlacement = errors.New("geometry: invalid placement")

// Side is the edge of the reference the floating element is attached to.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Opposite returns the side across the reference.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return s
}

// Vertical reports whether the floating element sits above or below.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// Alignment positions the floating element along the cross axis.
type Alignment string

const (
	AlignCenter Alignment = ""
	AlignStart  Alignment = "start"
	AlignEnd    Alignment = "end"
)

// Placement is the preferred side and alignment of the floating element.
type Placement string

const (
	PlacementTop         Placement = "top"
	PlacementTopStart    Placement = "top-start"
	PlacementTopEnd      Placement = "top-end"
	PlacementBottom      Placement = "bottom"
	PlacementBottomStart Placement = "bottom-start"
	PlacementBottomEnd   Placement = "bottom-end"
	PlacementLeft        Placement = "left"
	PlacementLeftStart   Placement = "left-start"
	PlacementLeftEnd     Placement = "left-end"
	PlacementRight       Placement = "right"
	PlacementRightStart  Placement = "right-start"
	PlacementRightEnd    Placement = "right-end"
)

// Placements lists every supported placement.
var Placements = []Placement{
	PlacementTop, PlacementTopStart, PlacementTopEnd,
	PlacementBottom, PlacementBottomStart, PlacementBottomEnd,
	PlacementLeft, PlacementLeftStart, PlacementLeftEnd,
	PlacementRight, PlacementRightStart, PlacementRightEnd,
}

// ParsePlacement parses a placement such as "bottom-start".
func ParsePlacement(s string) (Placement, error) {
	p := Placement(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
	}
	return p, nil
}

// Valid reports whether p is one of the twelve placements.
func (p Placement) Valid() bool {
	for _, v := range Placements {
		if v == p {
			return true
		}
	}
	return false
}

// Side returns the side component.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	return Side(side)
}

// Alignment returns the alignment component.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	return Alignment(align)
}

// Opposite flips the side and keeps the alignment.
func (p Placement) Opposite() Placement {
	return Compose(p.Side().Opposite(), p.Alignment())
}

// Compose builds a placement from its parts.
func Compose(side Side, align Alignment) Placement {
	if align == AlignCenter {
		return Placement(side)
	}
	return Placement(string(side) + "-" + string(align))
}

func (p Placement) String() string { return string(p) }

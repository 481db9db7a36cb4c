package menuscroll

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrUnknownOption is returned when an option name is not recognized.
	ErrUnknownOption = errors.New("unknown option")
	// ErrOptionType is returned when an option value has the wrong type.
	ErrOptionType = errors.New("invalid option value")
	// ErrPositioningConflict is returned when more than one positioning mode is selected.
	ErrPositioningConflict = errors.New("useScrolltop and useTransformPositioning are mutually exclusive")
)

// Positioning selects how the applied offset is expressed to the surface.
type Positioning int

const (
	// PositionTop moves the panel by adjusting its top edge.
	PositionTop Positioning = iota
	// PositionScrollTop scrolls the panel natively.
	PositionScrollTop
	// PositionTransform translates the panel.
	PositionTransform
)

func (p Positioning) String() string {
	switch p {
	case PositionScrollTop:
		return "scrolltop"
	case PositionTransform:
		return "transform"
	default:
		return "top"
	}
}

// Options configures one panel. Values are copied on registration and on
// every update, so a Panel never observes a half-applied change.
type Options struct {
	Trigger              string  `json:"trigger,omitempty"`
	MouseOutHideMenu     bool    `json:"mouseOutHideMenu"`
	ClickTrigger         bool    `json:"clickTrigger"`
	TouchTrigger         bool    `json:"touchTrigger"`
	EnableTouchSlide     bool    `json:"enableTouchSlide"`
	EnableMouseSlide     bool    `json:"enableMouseSlide"`
	TouchMoveDetect      float64 `json:"touchMoveDetect"`
	MenuMoveY            float64 `json:"menuMoveY"`
	Container            string  `json:"container,omitempty"`
	MenuFullWindowHeight bool    `json:"menuFullWindowHeight"`
	HideNavScrollUp      bool    `json:"hideNavScrollUp"`
	HideNavScrollDown    bool    `json:"hideNavScrollDown"`
	UseScrolltop         bool    `json:"useScrolltop"`
	UseTransform         bool    `json:"useTransformPositioning"`
	DisableHideWrapper   bool    `json:"disableHideWrapper"`
	TouchTextResize      bool    `json:"touchTextResize"`
	ScrollUpText         string  `json:"scrollUpText"`
	ScrollDownText       string  `json:"scrollDownText"`
}

// DefaultOptions returns the options a panel gets when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		MouseOutHideMenu: true,
		ClickTrigger:     true,
		TouchTrigger:     true,
		EnableTouchSlide: true,
		TouchMoveDetect:  15,
		MenuMoveY:        15,
		TouchTextResize:  true,
		ScrollUpText:     "scroll up",
		ScrollDownText:   "scroll down",
	}
}

// Validate checks option combinations and repairs non-positive step sizes.
func (o *Options) Validate() error {
	if o.UseScrolltop && o.UseTransform {
		return ErrPositioningConflict
	}
	defaults := DefaultOptions()
	if !finitePositive(o.MenuMoveY) {
		o.MenuMoveY = defaults.MenuMoveY
	}
	if o.TouchMoveDetect < 0 || math.IsNaN(o.TouchMoveDetect) || math.IsInf(o.TouchMoveDetect, 0) {
		o.TouchMoveDetect = defaults.TouchMoveDetect
	}
	return nil
}

// Positioning returns the selected positioning mode.
func (o Options) Positioning() Positioning {
	switch {
	case o.UseScrolltop:
		return PositionScrollTop
	case o.UseTransform:
		return PositionTransform
	default:
		return PositionTop
	}
}

// TriggerIsParent reports whether the trigger is the panel's structural
// parent, in which case every part of the panel lies inside the trigger.
func (o Options) TriggerIsParent() bool {
	return o.Trigger == ""
}

type optionField struct {
	get func(Options) any
	set func(*Options, any) error
}

func boolField(ptr func(*Options) *bool) optionField {
	return optionField{
		get: func(o Options) any { return *ptr(&o) },
		set: func(o *Options, v any) error {
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%w: want bool, got %T", ErrOptionType, v)
			}
			*ptr(o) = b
			return nil
		},
	}
}

func numberField(ptr func(*Options) *float64) optionField {
	return optionField{
		get: func(o Options) any { return *ptr(&o) },
		set: func(o *Options, v any) error {
			var f float64
			switch n := v.(type) {
			case float64:
				f = n
			case float32:
				f = float64(n)
			case int:
				f = float64(n)
			case int64:
				f = float64(n)
			default:
				return fmt.Errorf("%w: want number, got %T", ErrOptionType, v)
			}
			*ptr(o) = f
			return nil
		},
	}
}

func stringField(ptr func(*Options) *string) optionField {
	return optionField{
		get: func(o Options) any { return *ptr(&o) },
		set: func(o *Options, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: want string, got %T", ErrOptionType, v)
			}
			*ptr(o) = s
			return nil
		},
	}
}

// optionFields maps the public option names onto Options fields.
var optionFields = map[string]optionField{
	"trigger":                 stringField(func(o *Options) *string { return &o.Trigger }),
	"mouseOutHideMenu":        boolField(func(o *Options) *bool { return &o.MouseOutHideMenu }),
	"clickTrigger":            boolField(func(o *Options) *bool { return &o.ClickTrigger }),
	"touchTrigger":            boolField(func(o *Options) *bool { return &o.TouchTrigger }),
	"enableTouchSlide":        boolField(func(o *Options) *bool { return &o.EnableTouchSlide }),
	"enableMouseSlide":        boolField(func(o *Options) *bool { return &o.EnableMouseSlide }),
	"touchMoveDetect":         numberField(func(o *Options) *float64 { return &o.TouchMoveDetect }),
	"menuMoveY":               numberField(func(o *Options) *float64 { return &o.MenuMoveY }),
	"container":               stringField(func(o *Options) *string { return &o.Container }),
	"menuFullWindowHeight":    boolField(func(o *Options) *bool { return &o.MenuFullWindowHeight }),
	"hideNavScrollUp":         boolField(func(o *Options) *bool { return &o.HideNavScrollUp }),
	"hideNavScrollDown":       boolField(func(o *Options) *bool { return &o.HideNavScrollDown }),
	"useScrolltop":            boolField(func(o *Options) *bool { return &o.UseScrolltop }),
	"useTransformPositioning": boolField(func(o *Options) *bool { return &o.UseTransform }),
	"disableHideWrapper":      boolField(func(o *Options) *bool { return &o.DisableHideWrapper }),
	"touchTextResize":         boolField(func(o *Options) *bool { return &o.TouchTextResize }),
	"scrollUpText":            stringField(func(o *Options) *string { return &o.ScrollUpText }),
	"scrollDownText":          stringField(func(o *Options) *string { return &o.ScrollDownText }),
}

// OptionNames lists every recognized option name in sorted order.
func OptionNames() []string {
	return slices.Sorted(maps.Keys(optionFields))
}

// Get returns the value of a named option.
func (o Options) Get(name string) (any, error) {
	f, ok := optionFields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return f.get(o), nil
}

// With returns a copy of o with the named values applied. The receiver is
// left untouched when any value is rejected.
func (o Options) With(values map[string]any) (Options, error) {
	next := o
	for _, name := range slices.Sorted(maps.Keys(values)) {
		f, ok := optionFields[name]
		if !ok {
			return o, fmt.Errorf("%w: %q", ErrUnknownOption, name)
		}
		if err := f.set(&next, values[name]); err != nil {
			return o, fmt.Errorf("option %q: %w", name, err)
		}
	}
	if err := next.Validate(); err != nil {
		return o, err
	}
	return next, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

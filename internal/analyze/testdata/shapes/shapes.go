package shapes

import (
	"time"

	rt "view-generator/viewrt"
)

type Shape interface {
	Area() float64
}

type Circle struct {
	R float64
}

func (c Circle) Area() float64 { return 3 * c.R * c.R }

type Square struct {
	S float64
}

func (s *Square) Area() float64 { return s.S * s.S }

type Meters float64

type Labeled struct {
	Label string
}

type Drawing[T any] struct {
	Name    *string
	Shape   Shape
	Result  rt.Result[T]
	Timeout time.Duration
	Tags    map[string]T
	Labeled
}

const maxTags = 8

func validName(s *string) bool { return s != nil && *s != "" }

// Package dimen implements dimensions and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dimen is a dimension type.
// Values are in scaled big points (different from TeX).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels"
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// ErrFormat is returned for dimensions which cannot be parsed.
var ErrFormat = errors.New("format error parsing dimension")

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// Pixels returns a dimension in (rounded) pixels.
func (d Dimen) Pixels() int {
	return int((d + PX/2) / PX)
}

// CSS formats a dimension for style sheets and HTML attributes.
func (d Dimen) CSS() string {
	return strconv.Itoa(d.Pixels()) + "px"
}

// TeX formats a dimension as TeX big points.
func (d Dimen) TeX() string {
	return strconv.FormatFloat(d.Points(), 'f', 1, 64) + "bp"
}

// Size is the extent of an image or another rectangular object.
// A zero component means "natural size".
type Size struct {
	W, H Dimen
}

// IsZero is true if neither width nor height is given.
func (s Size) IsZero() bool {
	return s.W == 0 && s.H == 0
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+)(%|[cminpxtsb]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit.
// If a percentage value is given (`80%`), the second return value will be true.
//
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(strings.ToLower(s))
	if len(d) < 2 {
		return 0, false, ErrFormat
	}
	scale := SP
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "pt":
			scale = PT
		case "mm":
			scale = MM
		case "bp", "px":
			scale = BP
		case "cm":
			scale = CM
		case "in":
			scale = IN
		case "sp", "":
			scale = SP
		case "%":
			scale, ispcnt = 1, true
		default:
			return 0, false, ErrFormat
		}
	}
	n, err := strconv.Atoi(d[1])
	if err != nil {
		return 0, false, ErrFormat
	}
	return Dimen(n) * scale, ispcnt, nil
}

// ParseSize parses an image size given as `W`, `WxH` or `xH`.
// Numbers without a unit are pixels.
//
//     ParseSize("200")     => 200px × natural
//     ParseSize("200x50")  => 200px × 50px
//     ParseSize("x3cm")    => natural × 3cm
//
func ParseSize(s string) (Size, error) {
	var size Size
	s = strings.TrimSpace(s)
	if s == "" {
		return size, nil
	}
	m := sizePattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return Size{}, ErrFormat
	}
	w, h := m[1], m[2]
	var err error
	if size.W, err = parsePixels(w); err != nil {
		return Size{}, err
	}
	if size.H, err = parsePixels(h); err != nil {
		return Size{}, err
	}
	return size, nil
}

var sizePattern = regexp.MustCompile(`^([0-9]+(?:px|pt|bp|mm|cm|in)?)?(?:x([0-9]+(?:px|pt|bp|mm|cm|in)?))?$`)

func parsePixels(s string) (Dimen, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, ErrFormat
		}
		return Dimen(n) * PX, nil
	}
	d, pcnt, err := ParseDimen(s)
	if err != nil || pcnt || d < 0 {
		return 0, ErrFormat
	}
	return d, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

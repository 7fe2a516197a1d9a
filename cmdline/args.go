package main

import "fmt"
import "math"
import "strconv"
import "strings"

// angleValue is a flag taking an angle in degrees, stored in radians.
type angleValue struct {
	Radians float64
}

func (a *angleValue) Set(degreesStr string) error {
	degrees, err := strconv.ParseFloat(degreesStr, 64)
	if err != nil {
		return fmt.Errorf("Cannot parse \"%s\" as an angle in degrees", degreesStr)
	}
	a.Radians = degrees * math.Pi / 180
	return nil
}

func (a angleValue) String() string {
	return strconv.FormatFloat(a.Radians*180/math.Pi, 'f', -1, 64)
}

// sizeValue is a flag taking a viewport size as <width>x<height>.
type sizeValue struct {
	Width, Height int
}

func (s *sizeValue) Set(sizeStr string) error {
	parts := strings.Split(sizeStr, "x")
	if len(parts) != 2 {
		return fmt.Errorf("Cannot parse \"%s\" as <width>x<height>", sizeStr)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return err
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}
	s.Width = width
	s.Height = height
	return nil
}

func (s sizeValue) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

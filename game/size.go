package game

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// SizeClass is a growth bracket of a cell, selected by its mass.
type SizeClass struct {
	Index   int // -1 for neutral, otherwise position in the ordered brackets
	Growth  int // Mass gained per round
	MinSize int // Smallest mass belonging to the bracket
}

var (
	Neutral = SizeClass{Index: -1, Growth: 1, MinSize: 1}

	Small  = SizeClass{Index: 0, Growth: 5, MinSize: 1}
	Medium = SizeClass{Index: 1, Growth: 12, MinSize: 35}
	Big    = SizeClass{Index: 2, Growth: 35, MinSize: 100}
)

// Ordered by MinSize.
var sizeClasses = [...]SizeClass{Small, Medium, Big}

// Classify returns the highest bracket whose MinSize does not exceed mass.
func Classify(mass int) SizeClass {
	i, found := slices.BinarySearchFunc(sizeClasses[:], mass, func(c SizeClass, m int) int {
		return cmp.Compare(c.MinSize, m)
	})
	if found {
		return sizeClasses[i]
	}
	if i == 0 {
		return sizeClasses[0]
	}
	return sizeClasses[i-1]
}

// SizeIndex is the bracket index of mass.
func SizeIndex(mass int) int {
	return Classify(mass).Index
}

// Surplus is the mass a cell can give away while staying in its current bracket.
// The result can be negative; it is 0 for mass <= 1.
func Surplus(mass int) int {
	if mass <= 1 {
		return 0
	}
	return mass - Classify(mass).MinSize
}

// SurplusAbove is the mass a cell can give away while staying in the given bracket.
func SurplusAbove(mass int, class SizeClass) int {
	if mass <= 1 {
		return 0
	}
	return mass - class.MinSize
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		name      string
		xp        int
		wantLevel int
		wantNext  int
	}{
		{name: "fresh account", xp: 0, wantLevel: 1, wantNext: 200},
		{name: "just below level two", xp: 199, wantLevel: 1, wantNext: 200},
		{name: "level two threshold", xp: 200, wantLevel: 2, wantNext: 400},
		{name: "mid level", xp: 350, wantLevel: 2, wantNext: 400},
		{name: "high xp", xp: 1000, wantLevel: 6, wantNext: 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, next := CalculateLevel(tt.xp)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

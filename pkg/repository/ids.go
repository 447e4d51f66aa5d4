package repository

import (
	"strconv"
	"strings"

	"github.com/latoulicious/GEMS/pkg/store"
)

// Floors for minted identifiers. Heroes historically start at 101; missions
// and nominations at 1.
const (
	HeroIDFloor       = 101
	MissionIDFloor    = 1
	NominationIDFloor = 1
)

// nextID mints a new identifier as max(existing numeric ids) + 1, or the
// floor when no row carries a numeric id. Not safe under concurrent writers;
// the deployment assumes a single writer.
func nextID(table *store.Table, column string, floor int) int {
	max := 0
	found := false
	for _, row := range table.Rows {
		n, err := strconv.Atoi(strings.TrimSpace(row[column]))
		if err != nil {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}
	if !found {
		return floor
	}
	return max + 1
}

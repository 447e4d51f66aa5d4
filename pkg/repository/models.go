package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/latoulicious/GEMS/pkg/store"
)

// DateLayout is how calendar dates are serialized in the backing files
const DateLayout = "2006-01-02"

// Status is a nomination's approval state
type Status string

const (
	StatusPending  Status = "Pendente"
	StatusApproved Status = "Aprovado"
	StatusRejected Status = "Reprovado"
)

// ParseStatus resolves a stored status value case- and whitespace-insensitively
func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pendente":
		return StatusPending, true
	case "aprovado":
		return StatusApproved, true
	case "reprovado":
		return StatusRejected, true
	default:
		return "", false
	}
}

// Is compares a stored status value against this status, ignoring case and
// surrounding whitespace
func (s Status) Is(raw string) bool {
	parsed, ok := ParseStatus(raw)
	return ok && parsed == s
}

// Hero is a program participant
type Hero struct {
	ID         int
	Name       string
	Team       string
	StartDate  time.Time
	UpdateDate time.Time
}

// Mission is a recognized category of achievement with a fixed GEMS reward
type Mission struct {
	ID          int
	Name        string
	Description string
	Gems        int
	PillarID    int
	Pillar      string
	StartDate   time.Time
	UpdateDate  time.Time
}

// Nomination is one hero recognizing another for completing a mission
type Nomination struct {
	ID             int
	SubmittedAt    time.Time
	NominatorID    int
	NomineeID      int
	MissionID      int
	Justification  string
	Status         Status
	RawStatus      string
	AttachmentPath string
}

// parseInt coerces a stored numeric cell; unparseable values become zero
func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// parseDate coerces a stored date cell; unparseable values become the zero
// time, which fails any date-range filter downstream
func parseDate(raw string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t
}

func heroFromRow(row map[string]string) Hero {
	return Hero{
		ID:         parseInt(row[store.ColHeroID]),
		Name:       row[store.ColHeroName],
		Team:       row[store.ColHeroTeam],
		StartDate:  parseDate(row[store.ColStartDate]),
		UpdateDate: parseDate(row[store.ColUpdateDate]),
	}
}

func missionFromRow(row map[string]string) Mission {
	return Mission{
		ID:          parseInt(row[store.ColMissionID]),
		Name:        row[store.ColMissionName],
		Description: row[store.ColMissionDescribe],
		Gems:        parseInt(row[store.ColGemsAwarded]),
		PillarID:    parseInt(row[store.ColPillarID]),
		Pillar:      row[store.ColPillar],
		StartDate:   parseDate(row[store.ColStartDate]),
		UpdateDate:  parseDate(row[store.ColUpdateDate]),
	}
}

func nominationFromRow(row map[string]string) Nomination {
	status, _ := ParseStatus(row[store.ColStatus])
	return Nomination{
		ID:             parseInt(row[store.ColNominationID]),
		SubmittedAt:    parseDate(row[store.ColSubmissionDate]),
		NominatorID:    parseInt(row[store.ColNominatorID]),
		NomineeID:      parseInt(row[store.ColNomineeID]),
		MissionID:      parseInt(row[store.ColNominationMsn]),
		Justification:  row[store.ColJustification],
		Status:         status,
		RawStatus:      row[store.ColStatus],
		AttachmentPath: row[store.ColAttachmentPath],
	}
}

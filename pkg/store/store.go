package store

import "fmt"

// Entity identifies one of the three backed tables
type Entity string

const (
	EntityHero       Entity = "hero"
	EntityMission    Entity = "mission"
	EntityNomination Entity = "nomination"
)

// Store provides durable persistence for entity tables. Implementations must
// treat every cell as text; type coercion is the caller's responsibility.
type Store interface {
	Load(entity Entity) (*Table, error)
	Save(entity Entity, table *Table) error
}

// Hero columns
const (
	ColHeroID     = "id_hero"
	ColHeroName   = "hero_name"
	ColHeroTeam   = "hero_team"
	ColStartDate  = "start_date"
	ColUpdateDate = "update_date"
)

// Mission columns
const (
	ColMissionID       = "id_mission"
	ColMissionName     = "mission_name"
	ColMissionDescribe = "mission_discribe"
	ColGemsAwarded     = "GemsAwarded"
	ColPillarID        = "id_pillar"
	ColPillar          = "pillar"
)

// Nomination columns
const (
	ColNominationID   = "id_nomeacao"
	ColSubmissionDate = "data_submissao"
	ColNominatorID    = "id_nomeador"
	ColNomineeID      = "id_nomeado"
	ColNominationMsn  = "id_missao"
	ColJustification  = "justificativa"
	ColStatus         = "status"
	ColAttachmentPath = "caminho_anexo"
)

var schemas = map[Entity][]string{
	EntityHero: {ColHeroID, ColHeroName, ColHeroTeam, ColStartDate, ColUpdateDate},
	EntityMission: {ColMissionID, ColMissionName, ColMissionDescribe, ColGemsAwarded,
		ColPillarID, ColPillar, ColStartDate, ColUpdateDate},
	EntityNomination: {ColNominationID, ColSubmissionDate, ColNominatorID, ColNomineeID,
		ColNominationMsn, ColJustification, ColStatus, ColAttachmentPath},
}

var fileNames = map[Entity]string{
	EntityHero:       "dim_hero.csv",
	EntityMission:    "dim_map.csv",
	EntityNomination: "fact_nomeacao.csv",
}

// Schema returns the declared column list for the entity
func Schema(entity Entity) ([]string, error) {
	columns, ok := schemas[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", entity)
	}
	out := make([]string, len(columns))
	copy(out, columns)
	return out, nil
}

// FileName returns the backing file name for the entity
func FileName(entity Entity) (string, error) {
	name, ok := fileNames[entity]
	if !ok {
		return "", fmt.Errorf("unknown entity %q", entity)
	}
	return name, nil
}

// Entities returns all known entities
func Entities() []Entity {
	return []Entity{EntityHero, EntityMission, EntityNomination}
}

package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/store"
)

// ErrSelfNomination is returned when a hero nominates themselves
var ErrSelfNomination = errors.New("a hero cannot nominate themselves")

// Attachment is an optional evidence file submitted with a nomination
type Attachment struct {
	Filename string
	Data     []byte
}

// NominationRepository handles typed operations on the nomination table
type NominationRepository struct {
	store          store.Store
	attachmentsDir string
	logger         logging.Logger
}

// NewNominationRepository creates a nomination repository over the given
// store. Attachments are written under attachmentsDir.
func NewNominationRepository(st store.Store, attachmentsDir string, factory logging.LoggerFactory) *NominationRepository {
	return &NominationRepository{
		store:          st,
		attachmentsDir: attachmentsDir,
		logger:         factory.CreateRepositoryLogger(string(store.EntityNomination)),
	}
}

// All returns every nomination in table order
func (r *NominationRepository) All() ([]Nomination, error) {
	table, err := r.store.Load(store.EntityNomination)
	if err != nil {
		return nil, err
	}

	nominations := make([]Nomination, 0, table.Len())
	for _, row := range table.Rows {
		nominations = append(nominations, nominationFromRow(row))
	}
	return nominations, nil
}

// Create submits a new nomination in pending status. The self-nomination
// guard applies at creation only. When an attachment is given it is stored
// with the nomination id prefixed to the original filename.
func (r *NominationRepository) Create(nominatorID, nomineeID, missionID int, justification string, attachment *Attachment) (*Nomination, error) {
	justification = strings.TrimSpace(justification)
	if justification == "" {
		return nil, fmt.Errorf("%w: justification is required", ErrMissingField)
	}
	if nominatorID == nomineeID {
		return nil, ErrSelfNomination
	}

	table, err := r.store.Load(store.EntityNomination)
	if err != nil {
		return nil, err
	}

	id := nextID(table, store.ColNominationID, NominationIDFloor)

	attachmentPath := ""
	if attachment != nil {
		attachmentPath, err = r.saveAttachment(id, attachment)
		if err != nil {
			return nil, err
		}
	}

	table.Append(map[string]string{
		store.ColNominationID:   strconv.Itoa(id),
		store.ColSubmissionDate: time.Now().Format(DateLayout),
		store.ColNominatorID:    strconv.Itoa(nominatorID),
		store.ColNomineeID:      strconv.Itoa(nomineeID),
		store.ColNominationMsn:  strconv.Itoa(missionID),
		store.ColJustification:  justification,
		store.ColStatus:         string(StatusPending),
		store.ColAttachmentPath: attachmentPath,
	})

	if err := r.store.Save(store.EntityNomination, table); err != nil {
		return nil, err
	}

	r.logger.Info("Nomination created", map[string]interface{}{
		"id": id, "nominator": nominatorID, "nominee": nomineeID, "mission": missionID,
	})
	nomination := nominationFromRow(table.Rows[table.Len()-1])
	return &nomination, nil
}

// SetStatus records an approval decision. Transitions are permissive: an
// already-decided nomination can be decided again.
func (r *NominationRepository) SetStatus(id int, status Status) error {
	table, err := r.store.Load(store.EntityNomination)
	if err != nil {
		return err
	}

	target := strconv.Itoa(id)
	updated := false
	for _, row := range table.Rows {
		if strings.TrimSpace(row[store.ColNominationID]) == target {
			row[store.ColStatus] = string(status)
			updated = true
		}
	}
	if !updated {
		return ErrNotFound
	}

	if err := r.store.Save(store.EntityNomination, table); err != nil {
		return err
	}

	r.logger.Info("Nomination status changed", map[string]interface{}{
		"id": id, "status": string(status),
	})
	return nil
}

// CountByStatus tallies nominations per status; values that parse to no
// known status are skipped
func (r *NominationRepository) CountByStatus() (map[Status]int, error) {
	nominations, err := r.All()
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int)
	for _, nomination := range nominations {
		if nomination.Status == "" {
			continue
		}
		counts[nomination.Status]++
	}
	return counts, nil
}

// saveAttachment stores the evidence blob, disambiguated by the nomination id
func (r *NominationRepository) saveAttachment(id int, attachment *Attachment) (string, error) {
	if err := os.MkdirAll(r.attachmentsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachments directory: %w", err)
	}

	filename := filepath.Base(strings.TrimSpace(attachment.Filename))
	if filename == "" || filename == "." {
		filename = uuid.NewString()
	}

	path := filepath.Join(r.attachmentsDir, fmt.Sprintf("%d_%s", id, filename))
	if err := os.WriteFile(path, attachment.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store attachment: %w", err)
	}

	r.logger.Info("Attachment stored", map[string]interface{}{"id": id, "path": path})
	return path, nil
}

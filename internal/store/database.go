package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"naturalrights/internal/domain"
)

// ErrInvalidID is returned when a write or delete names an id that could
// not be a record id.
var ErrInvalidID = errors.New("invalid record id")

// ValidID reports whether id can name a record: it is non-empty and holds
// no '/', so no soul of one kind can reach into the namespace of another.
func ValidID(id string) bool { return id != "" && !strings.Contains(id, "/") }

func checkIDs(ids ...string) error {
	for _, id := range ids {
		if !ValidID(id) {
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return nil
}

// Database gives typed access to the six record kinds on top of any
// domain.Store. Getters return nil, nil when the record does not exist, and
// for ids that fail ValidID. Writes and deletes of such ids fail with
// ErrInvalidID.
type Database struct {
	store domain.Store
}

// NewDatabase wraps s.
func NewDatabase(s domain.Store) *Database { return &Database{store: s} }

func (db *Database) GetUser(id string) (*domain.User, error) {
	if !ValidID(id) {
		return nil, nil
	}
	var u domain.User
	return getRecord(db, UserSoul(id), &u)
}

func (db *Database) PutUser(u domain.User) error {
	if err := checkIDs(u.ID); err != nil {
		return err
	}
	return db.put(UserSoul(u.ID), u)
}

func (db *Database) DeleteUser(id string) error {
	if err := checkIDs(id); err != nil {
		return err
	}
	return db.store.Delete(UserSoul(id))
}

func (db *Database) GetDevice(id string) (*domain.Device, error) {
	if !ValidID(id) {
		return nil, nil
	}
	var d domain.Device
	return getRecord(db, DeviceSoul(id), &d)
}

func (db *Database) PutDevice(d domain.Device) error {
	if err := checkIDs(d.ID); err != nil {
		return err
	}
	return db.put(DeviceSoul(d.ID), d)
}

func (db *Database) DeleteDevice(id string) error {
	if err := checkIDs(id); err != nil {
		return err
	}
	return db.store.Delete(DeviceSoul(id))
}

func (db *Database) GetGroup(id string) (*domain.Group, error) {
	if !ValidID(id) {
		return nil, nil
	}
	var g domain.Group
	return getRecord(db, GroupSoul(id), &g)
}

func (db *Database) PutGroup(g domain.Group) error {
	if err := checkIDs(g.ID); err != nil {
		return err
	}
	return db.put(GroupSoul(g.ID), g)
}

func (db *Database) DeleteGroup(id string) error {
	if err := checkIDs(id); err != nil {
		return err
	}
	return db.store.Delete(GroupSoul(id))
}

func (db *Database) GetMembership(groupID, userID string) (*domain.Membership, error) {
	if !ValidID(groupID) || !ValidID(userID) {
		return nil, nil
	}
	var m domain.Membership
	return getRecord(db, MembershipSoul(groupID, userID), &m)
}

func (db *Database) PutMembership(m domain.Membership) error {
	if err := checkIDs(m.GroupID, m.UserID); err != nil {
		return err
	}
	return db.put(MembershipSoul(m.GroupID, m.UserID), m)
}

func (db *Database) DeleteMembership(groupID, userID string) error {
	if err := checkIDs(groupID, userID); err != nil {
		return err
	}
	return db.store.Delete(MembershipSoul(groupID, userID))
}

func (db *Database) GetDocument(id string) (*domain.Document, error) {
	if !ValidID(id) {
		return nil, nil
	}
	var d domain.Document
	return getRecord(db, DocumentSoul(id), &d)
}

func (db *Database) PutDocument(d domain.Document) error {
	if err := checkIDs(d.ID); err != nil {
		return err
	}
	return db.put(DocumentSoul(d.ID), d)
}

func (db *Database) DeleteDocument(id string) error {
	if err := checkIDs(id); err != nil {
		return err
	}
	return db.store.Delete(DocumentSoul(id))
}

// GetDocumentGrants lists every grant on the document, in soul order.
func (db *Database) GetDocumentGrants(documentID string) ([]domain.Grant, error) {
	if !ValidID(documentID) {
		return nil, nil
	}
	grants, err := db.store.ListDocumentGrants(DocumentSoul(documentID))
	if err != nil {
		return nil, fmt.Errorf("list grants of %s: %w", documentID, err)
	}
	return grants, nil
}

func (db *Database) GetGrant(documentID string, kind domain.GrantKind, id string) (*domain.Grant, error) {
	if !ValidID(documentID) || !ValidID(kind.String()) || !ValidID(id) {
		return nil, nil
	}
	var g domain.Grant
	return getRecord(db, GrantSoul(documentID, kind, id), &g)
}

func (db *Database) PutGrant(g domain.Grant) error {
	if err := checkIDs(g.DocumentID, g.Kind.String(), g.ID); err != nil {
		return err
	}
	return db.put(GrantSoul(g.DocumentID, g.Kind, g.ID), g)
}

func (db *Database) DeleteGrant(documentID string, kind domain.GrantKind, id string) error {
	if err := checkIDs(documentID, kind.String(), id); err != nil {
		return err
	}
	return db.store.Delete(GrantSoul(documentID, kind, id))
}

func (db *Database) put(soul string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", soul, err)
	}
	if err := db.store.Put(soul, b); err != nil {
		return fmt.Errorf("put %s: %w", soul, err)
	}
	return nil
}

func getRecord[T any](db *Database, soul string, out *T) (*T, error) {
	b, err := db.store.Get(soul)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", soul, err)
	}
	if b == nil {
		return nil, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", soul, err)
	}
	return out, nil
}

package store

import "naturalrights/internal/domain"

// Souls address records in a Store. Database only builds them from ids that
// pass ValidID.

func UserSoul(id string) string   { return "users/" + id }
func DeviceSoul(id string) string { return "devices/" + id }
func GroupSoul(id string) string  { return "groups/" + id }

func MembershipSoul(groupID, userID string) string {
	return GroupSoul(groupID) + "/members/" + userID
}

func DocumentSoul(id string) string { return "documents/" + id }

// GrantsPrefix is the common prefix of every grant of a document.
func GrantsPrefix(documentSoul string) string { return documentSoul + "/grants/" }

func GrantSoul(documentID string, kind domain.GrantKind, id string) string {
	return GrantsPrefix(DocumentSoul(documentID)) + kind.String() + "/" + id
}

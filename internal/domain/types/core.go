package types

// ActionType names one kind of action in a signed batch.
type ActionType string

// String returns the string form of the action type.
func (t ActionType) String() string { return string(t) }

// The closed set of action kinds understood by the engine.
const (
	ActionInitializeUser        ActionType = "InitializeUser"
	ActionLogin                 ActionType = "Login"
	ActionAddDevice             ActionType = "AddDevice"
	ActionAuthorizeDevice       ActionType = "AuthorizeDevice"
	ActionRemoveDevice          ActionType = "RemoveDevice"
	ActionCreateGroup           ActionType = "CreateGroup"
	ActionAddMemberToGroup      ActionType = "AddMemberToGroup"
	ActionRemoveMemberFromGroup ActionType = "RemoveMemberFromGroup"
	ActionAddAdminToGroup       ActionType = "AddAdminToGroup"
	ActionRemoveAdminFromGroup  ActionType = "RemoveAdminFromGroup"
	ActionCreateDocument        ActionType = "CreateDocument"
	ActionSignDocument          ActionType = "SignDocument"
	ActionGrantAccess           ActionType = "GrantAccess"
	ActionDecryptDocument       ActionType = "DecryptDocument"
	ActionRevokeAccess          ActionType = "RevokeAccess"
	ActionUpdateDocument        ActionType = "UpdateDocument"
	ActionGetPubKeys            ActionType = "GetPubKeys"
	ActionGetKeyPairs           ActionType = "GetKeyPairs"
)

// GrantKind tells whether a grant names a user or a group.
type GrantKind string

// String returns the string form of the grant kind.
func (k GrantKind) String() string { return string(k) }

const (
	GrantUser  GrantKind = "user"
	GrantGroup GrantKind = "group"
)

// Valid reports whether k is one of the two grant kinds.
func (k GrantKind) Valid() bool { return k == GrantUser || k == GrantGroup }

// KeyKind selects whose public keys GetPubKeys/GetKeyPairs return.
type KeyKind string

// String returns the string form of the key kind.
func (k KeyKind) String() string { return string(k) }

const (
	KeyUser     KeyKind = "user"
	KeyGroup    KeyKind = "group"
	KeyDocument KeyKind = "document"
	KeyDevice   KeyKind = "device"
)

package engine

import (
	"encoding/json"

	"naturalrights/internal/domain/types"
)

type constructor func(c caller, payload json.RawMessage) (Handler, error)

// routes is the closed table of action kinds. Anything missing here is
// reported as "Invalid action type".
var routes = map[types.ActionType]constructor{
	types.ActionInitializeUser:        route(newInitializeUser),
	types.ActionLogin:                 route(newLogin),
	types.ActionAddDevice:             route(newAddDevice),
	types.ActionAuthorizeDevice:       route(newAuthorizeDevice),
	types.ActionRemoveDevice:          route(newRemoveDevice),
	types.ActionCreateGroup:           route(newCreateGroup),
	types.ActionAddMemberToGroup:      route(newAddMemberToGroup),
	types.ActionRemoveMemberFromGroup: route(newRemoveMemberFromGroup),
	types.ActionAddAdminToGroup:       route(newAddAdminToGroup),
	types.ActionRemoveAdminFromGroup:  route(newRemoveAdminFromGroup),
	types.ActionCreateDocument:        route(newCreateDocument),
	types.ActionSignDocument:          route(newSignDocument),
	types.ActionGrantAccess:           route(newGrantAccess),
	types.ActionDecryptDocument:       route(newDecryptDocument),
	types.ActionRevokeAccess:          route(newRevokeAccess),
	types.ActionUpdateDocument:        route(newUpdateDocument),
	types.ActionGetPubKeys:            route(newGetPubKeys),
	types.ActionGetKeyPairs:           route(newGetKeyPairs),
}

// route decodes the payload into P and checks its ids before building the
// handler, so every handler works on its own concrete payload type.
func route[P any](build func(caller, P) Handler) constructor {
	return func(c caller, raw json.RawMessage) (Handler, error) {
		var p P
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		if err := checkIDs(p); err != nil {
			return nil, err
		}
		return build(c, p), nil
	}
}

// Routable reports whether t names a known action kind.
func Routable(t types.ActionType) bool {
	_, ok := routes[t]
	return ok
}

package domain

import (
	interfaces "naturalrights/internal/domain/interfaces"
	types "naturalrights/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ActionType     = types.ActionType
	GrantKind      = types.GrantKind
	KeyKind        = types.KeyKind
	KeyPair        = types.KeyPair
	DeviceKeys     = types.DeviceKeys
	AccountProfile = types.AccountProfile
	User           = types.User
	Device         = types.Device
	Group          = types.Group
	Membership     = types.Membership
	Document       = types.Document
	Grant          = types.Grant
	Request        = types.Request
	Action         = types.Action
	Result         = types.Result
	Response       = types.Response
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Store          = interfaces.Store
	DeviceKeyStore = interfaces.DeviceKeyStore
	AccountStore   = interfaces.AccountStore
	Primitives     = interfaces.Primitives
	RightsService  = interfaces.RightsService
	DeviceService  = interfaces.DeviceService
)

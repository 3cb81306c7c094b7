package engine

import (
	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

type createGroup struct {
	caller
	p types.CreateGroupPayload
}

func newCreateGroup(c caller, p types.CreateGroupPayload) Handler {
	return &createGroup{caller: c, p: p}
}

func (h *createGroup) CheckIsAuthorized(s *Service) (bool, error) {
	if h.userID == "" || h.p.UserID != h.userID || h.p.GroupID == "" {
		return false, nil
	}
	existing, err := s.DB.GetGroup(h.p.GroupID)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (h *createGroup) Execute(s *Service) (any, error) {
	err := s.DB.PutGroup(domain.Group{
		ID:              h.p.GroupID,
		UserID:          h.p.UserID,
		CryptPubKey:     h.p.CryptPubKey,
		EncCryptPrivKey: h.p.EncCryptPrivKey,
		EncSignPrivKey:  h.p.EncSignPrivKey,
	})
	if err != nil {
		return nil, err
	}
	return h.p, nil
}

type addMemberToGroup struct {
	caller
	p types.AddMemberToGroupPayload
}

func newAddMemberToGroup(c caller, p types.AddMemberToGroupPayload) Handler {
	return &addMemberToGroup{caller: c, p: p}
}

func (h *addMemberToGroup) CheckIsAuthorized(s *Service) (bool, error) {
	return s.IsGroupAdmin(h.p.GroupID, h.userID)
}

// Execute upserts the membership. An empty transform key or a missing canSign
// keeps what is stored, and an admin key is never dropped here.
func (h *addMemberToGroup) Execute(s *Service) (any, error) {
	group, err := s.DB.GetGroup(h.p.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	m, err := s.DB.GetMembership(h.p.GroupID, h.p.UserID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = &domain.Membership{GroupID: h.p.GroupID, UserID: h.p.UserID}
	}
	if h.p.CryptTransformKey != "" {
		m.CryptTransformKey = h.p.CryptTransformKey
	}
	if h.p.CanSign != nil {
		m.CanSign = *h.p.CanSign
	}
	if err := s.DB.PutMembership(*m); err != nil {
		return nil, err
	}
	return types.AddMemberToGroupResult{GroupID: m.GroupID, UserID: m.UserID, CanSign: m.CanSign}, nil
}

type removeMemberFromGroup struct {
	caller
	p types.MemberPayload
}

func newRemoveMemberFromGroup(c caller, p types.MemberPayload) Handler {
	return &removeMemberFromGroup{caller: c, p: p}
}

// CheckIsAuthorized lets admins remove anyone and members remove themselves.
func (h *removeMemberFromGroup) CheckIsAuthorized(s *Service) (bool, error) {
	if h.userID != "" && h.p.UserID == h.userID {
		return true, nil
	}
	return s.IsGroupAdmin(h.p.GroupID, h.userID)
}

func (h *removeMemberFromGroup) Execute(s *Service) (any, error) {
	if err := s.DB.DeleteMembership(h.p.GroupID, h.p.UserID); err != nil {
		return nil, err
	}
	return h.p, nil
}

type addAdminToGroup struct {
	caller
	p types.AddAdminToGroupPayload
}

func newAddAdminToGroup(c caller, p types.AddAdminToGroupPayload) Handler {
	return &addAdminToGroup{caller: c, p: p}
}

func (h *addAdminToGroup) CheckIsAuthorized(s *Service) (bool, error) {
	return s.IsGroupAdmin(h.p.GroupID, h.userID)
}

func (h *addAdminToGroup) Execute(s *Service) (any, error) {
	if h.p.EncCryptPrivKey == "" {
		return nil, ErrInvalidPayload
	}
	m, err := s.DB.GetMembership(h.p.GroupID, h.p.UserID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNoMembership
	}
	m.EncGroupCryptPrivKey = h.p.EncCryptPrivKey
	if err := s.DB.PutMembership(*m); err != nil {
		return nil, err
	}
	return types.MemberPayload{GroupID: m.GroupID, UserID: m.UserID}, nil
}

type removeAdminFromGroup struct {
	caller
	p types.MemberPayload
}

func newRemoveAdminFromGroup(c caller, p types.MemberPayload) Handler {
	return &removeAdminFromGroup{caller: c, p: p}
}

func (h *removeAdminFromGroup) CheckIsAuthorized(s *Service) (bool, error) {
	return s.IsGroupAdmin(h.p.GroupID, h.userID)
}

func (h *removeAdminFromGroup) Execute(s *Service) (any, error) {
	m, err := s.DB.GetMembership(h.p.GroupID, h.p.UserID)
	if err != nil {
		return nil, err
	}
	if m != nil && m.EncGroupCryptPrivKey != "" {
		m.EncGroupCryptPrivKey = ""
		if err := s.DB.PutMembership(*m); err != nil {
			return nil, err
		}
	}
	return h.p, nil
}

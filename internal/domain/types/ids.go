package types

// IDs lists the record ids a payload addresses, so they can be checked
// before any record is read or written. Empty entries are optional fields
// left unset.

func (p InitializeUserPayload) IDs() []string { return []string{p.UserID} }

func (p AddDevicePayload) IDs() []string { return []string{p.DeviceID, p.UserID} }

func (p AuthorizeDevicePayload) IDs() []string { return []string{p.DeviceID, p.UserID} }

func (p RemoveDevicePayload) IDs() []string { return []string{p.DeviceID, p.UserID} }

func (p CreateGroupPayload) IDs() []string { return []string{p.GroupID, p.UserID} }

func (p AddMemberToGroupPayload) IDs() []string { return []string{p.GroupID, p.UserID} }

func (p MemberPayload) IDs() []string { return []string{p.GroupID, p.UserID} }

func (p AddAdminToGroupPayload) IDs() []string { return []string{p.GroupID, p.UserID} }

func (p CreateDocumentPayload) IDs() []string { return []string{p.CryptUserID, p.CreatorID} }

func (p SignDocumentPayload) IDs() []string { return []string{p.DocumentID, p.UserID} }

func (p GrantAccessPayload) IDs() []string { return []string{p.DocumentID, p.ID} }

func (p RevokeAccessPayload) IDs() []string { return []string{p.DocumentID, p.ID} }

func (p DecryptDocumentPayload) IDs() []string { return []string{p.DocumentID} }

func (p UpdateDocumentPayload) IDs() []string { return []string{p.DocumentID, p.CryptUserID} }

func (p KeysPayload) IDs() []string { return []string{p.ID} }

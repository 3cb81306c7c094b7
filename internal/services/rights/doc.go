// Package rights is the client side of the protocol: the multi-action flows
// that generate keys, encrypt them for their recipients and build transform
// keys before handing the results to a domain.RightsService.
//
// Flows:
//   - account: InitializeUser, Login, AddDevice, AuthorizeDevice, RemoveDevice
//   - groups: CreateGroup, AddReaderToGroup, AddSignerToGroup, AddAdminToGroup,
//     RemoveAdminFromGroup, RemoveMemberFromGroup
//   - documents: CreateDocument, GrantReadAccess, GrantSignAccess,
//     RevokeAccess, UpdateDocumentEncryption, SignDocumentHashes,
//     SignDocumentTexts, EncryptDocumentTexts, DecryptDocumentTexts
//
// A batch with any failed action is reported as a *RequestError.
package rights

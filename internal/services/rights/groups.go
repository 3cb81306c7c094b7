package rights

import (
	"context"

	"naturalrights/internal/domain/types"
)

// CreateGroup creates a group with this user as creator, member and admin,
// and returns the group id.
func (c *Client) CreateGroup(ctx context.Context) (string, error) {
	ownerPubKey, err := c.GetEncryptionPublicKey(ctx, types.KeyUser, c.UserID)
	if err != nil {
		return "", err
	}
	groupCrypt, err := c.primitives.GenCryptKeyPair()
	if err != nil {
		return "", err
	}
	groupSign, err := c.primitives.GenSignKeyPair()
	if err != nil {
		return "", err
	}
	encCryptPrivKey, err := c.primitives.Encrypt(ownerPubKey, groupCrypt.PrivKey)
	if err != nil {
		return "", err
	}
	encSignPrivKey, err := c.primitives.Encrypt(ownerPubKey, groupSign.PrivKey)
	if err != nil {
		return "", err
	}
	transformKey, err := c.primitives.GenTransformKey(groupCrypt, ownerPubKey)
	if err != nil {
		return "", err
	}

	groupID := groupSign.PubKey
	b := new(batch).
		add(types.ActionCreateGroup, types.CreateGroupPayload{
			GroupID:         groupID,
			UserID:          c.UserID,
			CryptPubKey:     groupCrypt.PubKey,
			EncCryptPrivKey: encCryptPrivKey,
			EncSignPrivKey:  encSignPrivKey,
		}).
		add(types.ActionAddMemberToGroup, types.AddMemberToGroupPayload{
			GroupID:           groupID,
			UserID:            c.UserID,
			CryptTransformKey: transformKey,
			CanSign:           types.Bool(true),
		}).
		add(types.ActionAddAdminToGroup, types.AddAdminToGroupPayload{
			GroupID:         groupID,
			UserID:          c.UserID,
			EncCryptPrivKey: encCryptPrivKey,
		})
	if _, err := c.send(ctx, b); err != nil {
		return "", err
	}
	return groupID, nil
}

// AddReaderToGroup makes userID a member able to read what the group can.
func (c *Client) AddReaderToGroup(ctx context.Context, groupID, userID string) error {
	transformKey, _, err := c.groupKeysFor(ctx, groupID, userID)
	if err != nil {
		return err
	}
	_, err = requestOne[types.AddMemberToGroupResult](ctx, c, types.ActionAddMemberToGroup, types.AddMemberToGroupPayload{
		GroupID:           groupID,
		UserID:            userID,
		CryptTransformKey: transformKey,
	})
	return err
}

// AddSignerToGroup lets an existing or new member sign for the group.
func (c *Client) AddSignerToGroup(ctx context.Context, groupID, userID string) error {
	_, err := requestOne[types.AddMemberToGroupResult](ctx, c, types.ActionAddMemberToGroup, types.AddMemberToGroupPayload{
		GroupID: groupID,
		UserID:  userID,
		CanSign: types.Bool(true),
	})
	return err
}

// AddAdminToGroup makes userID a signing member holding the group key.
func (c *Client) AddAdminToGroup(ctx context.Context, groupID, userID string) error {
	transformKey, encCryptPrivKey, err := c.groupKeysFor(ctx, groupID, userID)
	if err != nil {
		return err
	}
	b := new(batch).
		add(types.ActionAddMemberToGroup, types.AddMemberToGroupPayload{
			GroupID:           groupID,
			UserID:            userID,
			CryptTransformKey: transformKey,
			CanSign:           types.Bool(true),
		}).
		add(types.ActionAddAdminToGroup, types.AddAdminToGroupPayload{
			GroupID:         groupID,
			UserID:          userID,
			EncCryptPrivKey: encCryptPrivKey,
		})
	_, err = c.send(ctx, b)
	return err
}

// RemoveAdminFromGroup takes the group key away from userID; the membership stays.
func (c *Client) RemoveAdminFromGroup(ctx context.Context, groupID, userID string) error {
	_, err := requestOne[types.MemberPayload](ctx, c, types.ActionRemoveAdminFromGroup, types.MemberPayload{
		GroupID: groupID,
		UserID:  userID,
	})
	return err
}

// RemoveMemberFromGroup drops userID from the group.
func (c *Client) RemoveMemberFromGroup(ctx context.Context, groupID, userID string) error {
	_, err := requestOne[types.MemberPayload](ctx, c, types.ActionRemoveMemberFromGroup, types.MemberPayload{
		GroupID: groupID,
		UserID:  userID,
	})
	return err
}

// groupKeysFor returns the group-to-member transform key and the group private
// key encrypted to the member. Only admins can compute either.
func (c *Client) groupKeysFor(ctx context.Context, groupID, userID string) (transformKey, encCryptPrivKey string, err error) {
	memberPubKey, err := c.GetEncryptionPublicKey(ctx, types.KeyUser, userID)
	if err != nil {
		return "", "", err
	}
	groupKeys, err := c.GetEncryptionKeyPair(ctx, types.KeyGroup, groupID)
	if err != nil {
		return "", "", err
	}
	transformKey, err = c.primitives.GenTransformKey(groupKeys, memberPubKey)
	if err != nil {
		return "", "", err
	}
	encCryptPrivKey, err = c.primitives.Encrypt(memberPubKey, groupKeys.PrivKey)
	if err != nil {
		return "", "", err
	}
	return transformKey, encCryptPrivKey, nil
}

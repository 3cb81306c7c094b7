package rights

import (
	"context"
	"fmt"

	"naturalrights/internal/domain/types"
)

// InitializeUser creates a new user owned by this device, together with the
// user's root document, in one registration batch. It returns the root
// document id and sets c.UserID.
func (c *Client) InitializeUser(ctx context.Context) (string, error) {
	userSign, err := c.primitives.GenSignKeyPair()
	if err != nil {
		return "", err
	}
	userCrypt, err := c.primitives.GenCryptKeyPair()
	if err != nil {
		return "", err
	}
	rootDoc, err := c.primitives.GenCryptKeyPair()
	if err != nil {
		return "", err
	}
	transformKey, err := c.primitives.GenTransformKey(userCrypt, c.device.Crypt.PubKey)
	if err != nil {
		return "", err
	}
	encSignPrivKey, err := c.primitives.Encrypt(userCrypt.PubKey, userSign.PrivKey)
	if err != nil {
		return "", err
	}
	encCryptPrivKey, err := c.primitives.Encrypt(userCrypt.PubKey, userCrypt.PrivKey)
	if err != nil {
		return "", err
	}
	rootEncCryptPrivKey, err := c.primitives.Encrypt(userCrypt.PubKey, rootDoc.PrivKey)
	if err != nil {
		return "", err
	}

	userID := userSign.PubKey
	b := new(batch).
		add(types.ActionInitializeUser, types.InitializeUserPayload{
			UserID:                 userID,
			SignPubKey:             userSign.PubKey,
			CryptPubKey:            userCrypt.PubKey,
			EncCryptPrivKey:        encCryptPrivKey,
			EncSignPrivKey:         encSignPrivKey,
			RootDocCryptPubKey:     rootDoc.PubKey,
			RootDocEncCryptPrivKey: rootEncCryptPrivKey,
		}).
		add(types.ActionAddDevice, types.AddDevicePayload{
			DeviceID:          c.device.ID(),
			UserID:            userID,
			CryptPubKey:       c.device.Crypt.PubKey,
			SignPubKey:        c.device.Sign.PubKey,
			CryptTransformKey: transformKey,
		})

	c.UserID = userID
	resp, err := c.send(ctx, b)
	if err != nil {
		c.UserID = ""
		return "", err
	}
	res, err := resultOf[types.InitializeUserResult](resp, types.ActionInitializeUser)
	if err != nil {
		return "", err
	}
	return res.RootDocumentID, nil
}

// Login announces this device. An unknown device is recorded unbound and the
// result is empty; an authorized device learns its user, which is stored in
// c.UserID.
func (c *Client) Login(ctx context.Context) (types.LoginResult, error) {
	res, err := requestOne[types.LoginResult](ctx, c, types.ActionLogin, types.LoginPayload{
		CryptPubKey: c.device.Crypt.PubKey,
	})
	if err != nil {
		return types.LoginResult{}, err
	}
	if res.UserID != "" {
		c.UserID = res.UserID
	}
	return res, nil
}

// AddDevice registers another device of this user from its public keys.
func (c *Client) AddDevice(ctx context.Context, deviceID, cryptPubKey string) error {
	transformKey, err := c.userTransformTo(ctx, cryptPubKey)
	if err != nil {
		return err
	}
	_, err = requestOne[types.AddDeviceResult](ctx, c, types.ActionAddDevice, types.AddDevicePayload{
		DeviceID:          deviceID,
		UserID:            c.UserID,
		CryptPubKey:       cryptPubKey,
		SignPubKey:        deviceID,
		CryptTransformKey: transformKey,
	})
	return err
}

// AuthorizeDevice binds a device that has logged in unbound to this user.
func (c *Client) AuthorizeDevice(ctx context.Context, deviceID string) error {
	keys, err := c.GetPublicKeys(ctx, types.KeyDevice, deviceID)
	if err != nil {
		return err
	}
	if keys.CryptPubKey == "" {
		return fmt.Errorf("device %s has no encryption key", deviceID)
	}
	transformKey, err := c.userTransformTo(ctx, keys.CryptPubKey)
	if err != nil {
		return err
	}
	_, err = requestOne[types.AuthorizeDevicePayload](ctx, c, types.ActionAuthorizeDevice, types.AuthorizeDevicePayload{
		DeviceID:          deviceID,
		UserID:            c.UserID,
		CryptTransformKey: transformKey,
	})
	return err
}

// RemoveDevice unbinds and deletes one of this user's devices.
func (c *Client) RemoveDevice(ctx context.Context, deviceID string) error {
	_, err := requestOne[types.RemoveDevicePayload](ctx, c, types.ActionRemoveDevice, types.RemoveDevicePayload{
		DeviceID: deviceID,
		UserID:   c.UserID,
	})
	return err
}

func (c *Client) userTransformTo(ctx context.Context, cryptPubKey string) (string, error) {
	userKeys, err := c.GetEncryptionKeyPair(ctx, types.KeyUser, c.UserID)
	if err != nil {
		return "", err
	}
	return c.primitives.GenTransformKey(userKeys, cryptPubKey)
}

package keeper_test

import (
	"context"
	"encoding/hex"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/crypto"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/keeper"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

func (s *KeeperTestSuite) requireOpens(opened types.OpenedAddress, address string) {
	key, err := hex.DecodeString(opened.PrivateKey)
	s.Require().NoError(err)
	derived, err := crypto.AddressFromPrivateKey(key)
	s.Require().NoError(err)
	s.Require().Equal(address, derived.Hex())
	s.Require().Equal(address, opened.Address)
}

func (s *KeeperTestSuite) TestOpenRoundTrip() {
	recipient := s.createAccount()
	res := s.generate(recipient.EncryptionPublic)

	tests := []struct {
		name     string
		local    bool
		strategy string
	}{
		{
			name:     "sender device with cached secret",
			local:    true,
			strategy: keeper.StrategyCachedSecret,
		},
		{
			name:     "recipient device",
			strategy: keeper.StrategyOwnerEncryptionKey,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			k := s.keeper
			if !tt.local {
				k = s.freshKeeper(types.DefaultParams())
			}
			opened, err := k.OpenStealthAddress(s.ctx, res.StealthAddress, res.EphemeralPublicKey, recipient)
			s.Require().NoError(err)
			s.Require().Equal(tt.strategy, opened.Strategy)
			s.requireOpens(opened, res.StealthAddress)
		})
	}
}

func (s *KeeperTestSuite) TestOpenReplaysRecordedMethod() {
	params := types.DefaultParams()
	params.PersistSharedSecret = false
	k := s.freshKeeper(params)

	recipient := s.createAccount()
	res, err := k.GenerateStealthAddress(s.ctx, recipient.EncryptionPublic, "")
	s.Require().NoError(err)

	// the sender can reopen from history without the recipient's keys
	opened, err := k.OpenStealthAddress(s.ctx, res.StealthAddress, "", types.KeyPair{})
	s.Require().NoError(err)
	s.Require().Equal(keeper.StrategyRecordedMethod, opened.Strategy)
	s.requireOpens(opened, res.StealthAddress)
}

func (s *KeeperTestSuite) TestOpenWithSigningIdentity() {
	recipient := s.createAccount()
	res := s.generate(recipient.SigningPublic)

	k := s.freshKeeper(types.DefaultParams())
	opened, err := k.OpenStealthAddress(s.ctx, res.StealthAddress, res.EphemeralPublicKey, recipient)
	s.Require().NoError(err)
	s.Require().Equal(keeper.StrategyOwnerSigningKey, opened.Strategy)
	s.requireOpens(opened, res.StealthAddress)
}

func (s *KeeperTestSuite) TestOpenUsesRecordedEphemeralKey() {
	recipient := s.createAccount()
	res := s.generate(recipient.EncryptionPublic)

	// drop the cached secret so only the owner strategies can match
	record, err := s.keeper.LoadAnnouncement(s.ctx, res.StealthAddress)
	s.Require().NoError(err)
	record.SharedSecret = ""
	record.Method = types.MethodLegacy
	s.Require().NoError(s.keeper.SaveAnnouncement(s.ctx, res.StealthAddress, *record))

	opened, err := s.keeper.OpenStealthAddress(s.ctx, res.StealthAddress, "", recipient)
	s.Require().NoError(err)
	s.Require().Equal(keeper.StrategyOwnerEncryptionKey, opened.Strategy)
}

func (s *KeeperTestSuite) TestOpenWrongOwner() {
	recipient := s.createAccount()
	stranger := s.createAccount()
	res := s.generate(recipient.EncryptionPublic)

	k := s.freshKeeper(types.DefaultParams())
	_, err := k.OpenStealthAddress(s.ctx, res.StealthAddress, res.EphemeralPublicKey, stranger)
	s.Require().ErrorIs(err, types.ErrStealthOpenFailed)

	_, err = k.OpenStealthAddress(s.ctx, res.StealthAddress, "", types.KeyPair{})
	s.Require().ErrorIs(err, types.ErrStealthOpenFailed)
}

func (s *KeeperTestSuite) TestOpenRejectsTamperedSecret() {
	recipient := s.createAccount()
	stranger := s.createAccount()
	res := s.generate(recipient.EncryptionPublic)

	record, err := s.keeper.LoadAnnouncement(s.ctx, res.StealthAddress)
	s.Require().NoError(err)
	record.SharedSecret = "deadbeef"
	record.EphemeralKeyPair.EncryptionPrivate = stranger.EncryptionPrivate
	s.Require().NoError(s.keeper.SaveAnnouncement(s.ctx, res.StealthAddress, *record))

	_, err = s.keeper.OpenStealthAddress(s.ctx, res.StealthAddress, res.EphemeralPublicKey, stranger)
	s.Require().ErrorIs(err, types.ErrStealthOpenFailed)

	failures := promtestutil.ToFloat64(s.metrics.Opened.WithLabelValues(keeper.StrategyCachedSecret, "failure"))
	s.Require().Equal(float64(1), failures)

	// the owner still opens it with their own keys
	opened, err := s.keeper.OpenStealthAddress(s.ctx, res.StealthAddress, res.EphemeralPublicKey, recipient)
	s.Require().NoError(err)
	s.Require().Equal(keeper.StrategyOwnerEncryptionKey, opened.Strategy)
}

func (s *KeeperTestSuite) TestOpenIgnoresCorruptRecord() {
	recipient := s.createAccount()
	res := s.generate(recipient.EncryptionPublic)

	blob := `{"` + res.StealthAddress + `":{"recipientPublicKey":"","timestamp":-1}}`
	s.Require().NoError(s.fixture.Storage.SetItem(types.DefaultHistoryKey, blob))

	_, err := s.keeper.LoadAnnouncement(s.ctx, res.StealthAddress)
	s.Require().ErrorIs(err, types.ErrInvalidStealthData)

	opened, err := s.keeper.OpenStealthAddress(s.ctx, res.StealthAddress, res.EphemeralPublicKey, recipient)
	s.Require().NoError(err)
	s.Require().Equal(keeper.StrategyOwnerEncryptionKey, opened.Strategy)
}

func (s *KeeperTestSuite) TestOpenValidatesInput() {
	recipient := s.createAccount()

	_, err := s.keeper.OpenStealthAddress(s.ctx, "0x1234", "", recipient)
	s.Require().ErrorIs(err, types.ErrInvalidAddress)

	res := s.generate(recipient.EncryptionPublic)
	_, err = s.keeper.OpenStealthAddress(s.ctx, res.StealthAddress, "not a key", recipient)
	s.Require().ErrorIs(err, types.ErrInvalidStealthKeys)
}

func (s *KeeperTestSuite) TestOpenCancelled() {
	recipient := s.createAccount()
	res := s.generate(recipient.EncryptionPublic)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.keeper.OpenStealthAddress(ctx, res.StealthAddress, res.EphemeralPublicKey, recipient)
	s.Require().Error(err)
	s.Require().NotErrorIs(err, types.ErrStealthOpenFailed)
}

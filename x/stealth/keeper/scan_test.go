package keeper_test

import (
	"context"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/testutil"
	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

func (s *KeeperTestSuite) TestScanIsolatesOwners() {
	alice := s.createAccount()
	bob := s.createAccount()
	carol := s.createAccount()

	var aliceAddrs, bobAddrs []string
	for i := 0; i < 6; i++ {
		if i%3 == 0 {
			bobAddrs = append(bobAddrs, s.generate(bob.EncryptionPublic).StealthAddress)
			continue
		}
		aliceAddrs = append(aliceAddrs, s.generate(alice.EncryptionPublic).StealthAddress)
	}

	candidates, err := s.keeper.Announcements(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(candidates, 6)

	before, _, err := s.fixture.Storage.GetItem(types.DefaultHistoryKey)
	s.Require().NoError(err)

	// a scanner on another device holds no history at all
	scanner := s.freshKeeper(types.DefaultParams())

	owned, err := scanner.ScanStealthAddresses(s.ctx, candidates, alice)
	s.Require().NoError(err)
	s.Require().ElementsMatch(aliceAddrs, stealthAddresses(owned))

	owned, err = scanner.ScanStealthAddresses(s.ctx, candidates, bob)
	s.Require().NoError(err)
	s.Require().ElementsMatch(bobAddrs, stealthAddresses(owned))

	owned, err = scanner.ScanStealthAddresses(s.ctx, candidates, carol)
	s.Require().NoError(err)
	s.Require().Empty(owned)

	after, _, err := s.fixture.Storage.GetItem(types.DefaultHistoryKey)
	s.Require().NoError(err)
	s.Require().Equal(before, after)
}

func (s *KeeperTestSuite) TestScanPreservesOrderAndSkipsInvalid() {
	owner := s.createAccount()
	var candidates []types.Announcement
	var want []string
	for i := 0; i < 8; i++ {
		res := s.generate(owner.EncryptionPublic)
		record, err := s.keeper.LoadAnnouncement(s.ctx, res.StealthAddress)
		s.Require().NoError(err)
		candidates = append(candidates, *record)
		want = append(want, res.StealthAddress)
	}

	noAddress := candidates[0]
	noAddress.StealthAddress = ""
	noTimestamp := candidates[1]
	noTimestamp.Timestamp = 0
	badMethod := candidates[2]
	badMethod.Method = "rot13"
	badEphemeral := candidates[3]
	badEphemeral.EphemeralKeyPair.EncryptionPublic = "not a key"
	candidates = append([]types.Announcement{noAddress, noTimestamp}, append(candidates, badMethod, badEphemeral)...)

	params := types.DefaultParams()
	params.ScanWorkers = 3
	metrics := s.metrics
	owned, err := s.keeper.ScanStealthAddresses(s.ctx, candidates, owner)
	s.Require().NoError(err)
	s.Require().Equal(want, stealthAddresses(owned))
	s.Require().Equal(float64(4), promtestutil.ToFloat64(metrics.Scanned.WithLabelValues("invalid")))
	s.Require().Equal(float64(8), promtestutil.ToFloat64(metrics.Scanned.WithLabelValues("owned")))

	narrow := s.freshKeeper(params)
	owned, err = narrow.ScanStealthAddresses(s.ctx, candidates, owner)
	s.Require().NoError(err)
	s.Require().Equal(want, stealthAddresses(owned))
}

func (s *KeeperTestSuite) TestScanEmptyAndCancelled() {
	owner := s.createAccount()

	owned, err := s.keeper.ScanStealthAddresses(s.ctx, nil, owner)
	s.Require().NoError(err)
	s.Require().Empty(owned)

	s.generate(owner.EncryptionPublic)
	candidates, err := s.keeper.Announcements(s.ctx)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err = s.keeper.ScanStealthAddresses(ctx, candidates, owner)
	s.Require().ErrorIs(err, context.Canceled)
}

func (s *KeeperTestSuite) TestScanNeedsOwnerKeys() {
	owner := s.createAccount()
	s.generate(owner.EncryptionPublic)
	candidates, err := s.keeper.Announcements(s.ctx)
	s.Require().NoError(err)

	// the history copy knows the secret, but the scanner must not rely on it
	owned, err := s.keeper.ScanStealthAddresses(s.ctx, candidates, types.KeyPair{})
	s.Require().NoError(err)
	s.Require().Empty(owned)

	owned, err = s.keeper.ScanStealthAddresses(s.ctx, candidates, owner.Public())
	s.Require().NoError(err)
	s.Require().Empty(owned)
}

func (s *KeeperTestSuite) TestScanMockedKeeperHasNoSideEffects() {
	k, _ := testutil.SetupMockedKeeper(s.T(), types.DefaultParams())
	// invalid candidates are rejected before any collaborator is used
	owned, err := k.ScanStealthAddresses(s.ctx, []types.Announcement{{}, {Timestamp: 1}}, types.KeyPair{})
	s.Require().NoError(err)
	s.Require().Empty(owned)
}

func stealthAddresses(announcements []types.Announcement) []string {
	out := make([]string, 0, len(announcements))
	for _, a := range announcements {
		out = append(out, a.StealthAddress)
	}
	return out
}

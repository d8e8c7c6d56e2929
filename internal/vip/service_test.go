package vip_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/internal/adapter/repo/memrepo"
	"server/internal/domain"
	"server/internal/vip"
)

func seededStore(t *testing.T) (*memrepo.Store, string) {
	t.Helper()
	store := memrepo.NewStore()
	store.SeedTier(domain.VIPTier{ID: 1, Name: "Silver", Level: 1, Price: 9.99, MaxPrivateCircles: 1})
	store.SeedTier(domain.VIPTier{ID: 2, Name: "Gold", Level: 2, Price: 19.99, MaxPrivateCircles: 3})

	u, err := store.Users().Create(context.Background(), &domain.User{ID: uuid.NewString(), Username: "alice"})
	require.NoError(t, err)
	return store, u.ID
}

func TestTiersOrderedByLevel(t *testing.T) {
	store, _ := seededStore(t)
	svc := vip.NewService(store.Users(), store.Tiers())

	tiers, err := svc.Tiers(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, "Silver", tiers[0].Name)
	assert.Equal(t, "Gold", tiers[1].Name)
}

func TestPurchaseSetsTierAndExpiry(t *testing.T) {
	ctx := context.Background()
	store, userID := seededStore(t)
	svc := vip.NewService(store.Users(), store.Tiers())

	before := time.Now()
	entitlement, err := svc.Purchase(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, entitlement.Tier.ID)

	wantExpiry := before.Add(vip.MembershipDuration)
	assert.WithinDuration(t, wantExpiry, entitlement.ExpiresAt, time.Minute)

	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.VIPTierID)
	assert.Equal(t, 2, *user.VIPTierID)
}

func TestPurchaseUnknownTier(t *testing.T) {
	store, userID := seededStore(t)
	svc := vip.NewService(store.Users(), store.Tiers())

	_, err := svc.Purchase(context.Background(), userID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseReplacesPriorTier(t *testing.T) {
	ctx := context.Background()
	store, userID := seededStore(t)
	svc := vip.NewService(store.Users(), store.Tiers())

	_, err := svc.Purchase(ctx, userID, 2)
	require.NoError(t, err)

	// a later purchase of a lower tier still replaces outright
	entitlement, err := svc.Purchase(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, entitlement.Tier.ID)

	quota, err := svc.PrivateCircleQuota(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, quota)
}

func TestQuotaWithoutTierIsZero(t *testing.T) {
	store, userID := seededStore(t)
	svc := vip.NewService(store.Users(), store.Tiers())

	quota, err := svc.PrivateCircleQuota(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, quota)
}

func TestQuotaUnknownUser(t *testing.T) {
	store, _ := seededStore(t)
	svc := vip.NewService(store.Users(), store.Tiers())

	_, err := svc.PrivateCircleQuota(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves a fixed snapshot filtered by the requested group scope.
type fakeStore struct {
	groupNames   map[int64]string
	memberships  map[int64][]int64 // userID -> groupIDs
	expenses     []Expense
	settlements  []Settlement
	groupMembers map[int64][]Member
}

func (f *fakeStore) IsMember(_ context.Context, userID, groupID int64) (bool, error) {
	for _, id := range f.memberships[userID] {
		if id == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GroupIDsForUser(_ context.Context, userID int64) ([]int64, error) {
	return f.memberships[userID], nil
}

func (f *fakeStore) GetGroupName(_ context.Context, groupID int64) (string, error) {
	name, ok := f.groupNames[groupID]
	if !ok {
		return "", ErrGroupNotFound
	}
	return name, nil
}

func (f *fakeStore) ListExpenses(_ context.Context, groupIDs []int64) ([]Expense, error) {
	var out []Expense
	for _, e := range f.expenses {
		if containsID(groupIDs, e.GroupID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListCompletedSettlements(_ context.Context, groupIDs []int64) ([]Settlement, error) {
	return f.settlements, nil
}

func (f *fakeStore) ListMembers(_ context.Context, groupIDs []int64) ([]Member, error) {
	seen := make(map[int64]bool)
	var out []Member
	for _, gid := range groupIDs {
		for _, m := range f.groupMembers[gid] {
			if !seen[m.ID] {
				seen[m.ID] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Two groups: in group 1 Alice paid 50 split evenly with Bob, in group 2 Bob
// paid 30 split evenly with Alice and Carol.
func newFakeStore() *fakeStore {
	alice := Member{ID: 1, Name: "Alice", Email: "alice@example.com"}
	bob := Member{ID: 2, Name: "Bob", Email: "bob@example.com"}
	carol := Member{ID: 3, Name: "Carol", Email: "carol@example.com"}

	return &fakeStore{
		groupNames: map[int64]string{10: "Flat", 20: "Trip"},
		memberships: map[int64][]int64{
			1: {10, 20},
			2: {10, 20},
			3: {20},
		},
		expenses: []Expense{
			{ID: 100, GroupID: 10, PayerID: 1, Amount: dec("50.00"), Splits: []SplitShare{
				{UserID: 1, Amount: dec("25.00")},
				{UserID: 2, Amount: dec("25.00")},
			}},
			{ID: 101, GroupID: 20, PayerID: 2, Amount: dec("30.00"), Splits: []SplitShare{
				{UserID: 1, Amount: dec("10.00")},
				{UserID: 2, Amount: dec("10.00")},
				{UserID: 3, Amount: dec("10.00")},
			}},
		},
		groupMembers: map[int64][]Member{
			10: {alice, bob},
			20: {alice, bob, carol},
		},
	}
}

func TestGetGroupBalancesDeniesNonMembers(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.GetGroupBalances(context.Background(), 3, 10)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetGroupBalances(t *testing.T) {
	svc := NewService(newFakeStore())

	resp, err := svc.GetGroupBalances(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.GroupID)
	assert.Equal(t, "Flat", resp.GroupName)

	require.Len(t, resp.AllDebts, 1)
	assert.Equal(t, int64(2), resp.AllDebts[0].From.ID)
	assert.Equal(t, int64(1), resp.AllDebts[0].To.ID)
	assert.True(t, resp.AllDebts[0].Amount.Equal(dec("25")))

	assert.Empty(t, resp.YouOwe)
	require.Len(t, resp.YouAreOwed, 1)
	assert.Equal(t, "Bob", resp.YouAreOwed[0].User.Name)
	assert.True(t, resp.YouAreOwed[0].Amount.Equal(dec("25")))
}

func TestGetGroupBalancesOtherSide(t *testing.T) {
	svc := NewService(newFakeStore())

	resp, err := svc.GetGroupBalances(context.Background(), 2, 10)
	require.NoError(t, err)

	require.Len(t, resp.YouOwe, 1)
	assert.Equal(t, "Alice", resp.YouOwe[0].User.Name)
	assert.True(t, resp.YouOwe[0].Amount.Equal(dec("25")))
	assert.Empty(t, resp.YouAreOwed)
}

// Merging both groups into one scope nets Bob's 25 flat debt against the 20
// he is owed from the trip: Alice ends up +15, Bob -5, Carol -10.
func TestGetUserBalancesNetsAcrossGroups(t *testing.T) {
	svc := NewService(newFakeStore())

	resp, err := svc.GetUserBalances(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.YouAreOwed, 2)
	assert.Equal(t, "Carol", resp.YouAreOwed[0].User.Name)
	assert.True(t, resp.YouAreOwed[0].Amount.Equal(dec("10")))
	assert.Equal(t, "Bob", resp.YouAreOwed[1].User.Name)
	assert.True(t, resp.YouAreOwed[1].Amount.Equal(dec("5")))

	assert.Empty(t, resp.YouOwe)
	assert.True(t, resp.TotalOwed.Equal(dec("15")))
	assert.True(t, resp.TotalOwing.IsZero())
	assert.True(t, resp.NetBalance.Equal(dec("15")))
}

func TestGetUserBalancesNoGroups(t *testing.T) {
	svc := NewService(newFakeStore())

	resp, err := svc.GetUserBalances(context.Background(), 99)
	require.NoError(t, err)

	assert.Empty(t, resp.YouOwe)
	assert.Empty(t, resp.YouAreOwed)
	assert.True(t, resp.NetBalance.IsZero())
}

func TestMemberNet(t *testing.T) {
	svc := NewService(newFakeStore())

	net, err := svc.MemberNet(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.True(t, net.Equal(dec("-25")))

	net, err = svc.MemberNet(context.Background(), 20, 3)
	require.NoError(t, err)
	assert.True(t, net.Equal(dec("-10")))
}

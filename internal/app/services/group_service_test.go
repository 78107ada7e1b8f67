package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecampus/backend/internal/app/auth"
	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/pkg/apperrors"
	"github.com/ecampus/backend/internal/pkg/joincode"
)

// --- in-memory fakes ---

type fakeUsers struct {
	byID   map[int64]*models.User
	nextID int64
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if taken, _ := f.EmailExists(ctx, u.Email); taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if taken, _ := f.UsernameExists(ctx, u.Username); taken {
		return nil, apperrors.ErrUsernameAlreadyExists
	}
	if f.nextID == 0 {
		for id := range f.byID {
			if id > f.nextID {
				f.nextID = id
			}
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsernameOrEmail(_ context.Context, value string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Username == value || u.Email == value {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, fields map[string]interface{}) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if v, ok := fields["first_name"]; ok {
		u.FirstName = v.(string)
	}
	if v, ok := fields["last_name"]; ok {
		u.LastName = v.(string)
	}
	if v, ok := fields["email"]; ok {
		u.Email = v.(string)
	}
	return u, nil
}

type fakeMembers struct {
	users   *fakeUsers
	byGroup map[int64][]int64
}

func (f *fakeMembers) IsMember(_ context.Context, groupID, userID int64) (bool, error) {
	for _, id := range f.byGroup[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembers) Add(ctx context.Context, groupID, userID int64) error {
	if already, _ := f.IsMember(ctx, groupID, userID); already {
		return nil
	}
	f.byGroup[groupID] = append(f.byGroup[groupID], userID)
	return nil
}

func (f *fakeMembers) GetMembers(_ context.Context, groupID int64) ([]*models.User, error) {
	var out []*models.User
	for _, id := range f.byGroup[groupID] {
		out = append(out, f.users.byID[id])
	}
	return out, nil
}

type fakeGroups struct {
	members *fakeMembers
	byID    map[int64]*models.Group
	nextID  int64
}

func (f *fakeGroups) JoinCodeExists(_ context.Context, code string) (bool, error) {
	for _, g := range f.byID {
		if g.JoinCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroups) CreateWithOwner(ctx context.Context, group *models.Group) (*models.Group, error) {
	if taken, _ := f.JoinCodeExists(ctx, group.JoinCode); taken {
		return nil, apperrors.NewConflictError("join code already taken")
	}
	f.nextID++
	group.ID = f.nextID
	f.byID[group.ID] = group
	if err := f.members.Add(ctx, group.ID, group.OwnerID); err != nil {
		return nil, err
	}
	return group, nil
}

func (f *fakeGroups) GetByID(_ context.Context, id int64) (*models.Group, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("group not found")
	}
	return g, nil
}

func (f *fakeGroups) GetByJoinCode(_ context.Context, code string) (*models.Group, error) {
	for _, g := range f.byID {
		if g.JoinCode == code {
			return g, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("group not found")
}

func (f *fakeGroups) ListByMember(_ context.Context, userID int64, offset uint64, limit int) ([]*models.Group, int64, error) {
	var out []*models.Group
	for gid, members := range f.members.byGroup {
		for _, id := range members {
			if id == userID {
				out = append(out, f.byID[gid])
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeGroups) Update(_ context.Context, id int64, fields map[string]interface{}) (*models.Group, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("group not found")
	}
	if v, ok := fields["name"]; ok {
		g.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		g.Description = v.(string)
	}
	return g, nil
}

func (f *fakeGroups) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.NewResourceNotFoundError("group not found")
	}
	delete(f.byID, id)
	delete(f.members.byGroup, id)
	return nil
}

type fakeTopics struct {
	byID   map[int64]*models.Topic
	nextID int64
}

func (f *fakeTopics) Create(_ context.Context, t *models.Topic) (*models.Topic, error) {
	f.nextID++
	t.ID = f.nextID
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTopics) GetByID(_ context.Context, id int64) (*models.Topic, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("topic not found")
	}
	return t, nil
}

func (f *fakeTopics) ListByGroup(_ context.Context, groupID int64, offset uint64, limit int) ([]*models.Topic, int64, error) {
	var out []*models.Topic
	for _, t := range f.byID {
		if t.GroupID == groupID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeTopics) Update(_ context.Context, id int64, fields map[string]interface{}) (*models.Topic, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("topic not found")
	}
	if v, ok := fields["title"]; ok {
		t.Title = v.(string)
	}
	if v, ok := fields["description"]; ok {
		t.Description = v.(string)
	}
	return t, nil
}

func (f *fakeTopics) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.NewResourceNotFoundError("topic not found")
	}
	delete(f.byID, id)
	return nil
}

// --- fixture ---

type fixture struct {
	users   *fakeUsers
	members *fakeMembers
	groups  *fakeGroups
	topics  *fakeTopics
	group   GroupService
}

func newFixture() *fixture {
	users := &fakeUsers{byID: map[int64]*models.User{
		1: {ID: 1, Username: "owner", Email: "owner@example.com", IsStaff: true},
		2: {ID: 2, Username: "alice", Email: "alice@example.com"},
		3: {ID: 3, Username: "bob", Email: "bob@example.com"},
	}}
	members := &fakeMembers{users: users, byGroup: map[int64][]int64{}}
	groups := &fakeGroups{members: members, byID: map[int64]*models.Group{}}
	topics := &fakeTopics{byID: map[int64]*models.Topic{}}

	resolver := auth.NewResolver(groups, members, topics)

	return &fixture{
		users:   users,
		members: members,
		groups:  groups,
		topics:  topics,
		group:   NewGroupService(groups, members, users, resolver),
	}
}

func staffPrincipal(id int64) auth.Principal {
	return auth.Principal{UserID: id, IsStaff: true, Authenticated: true}
}

func userPrincipal(id int64) auth.Principal {
	return auth.Principal{UserID: id, Authenticated: true}
}

// --- tests ---

func TestGroupCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{
		Name:        "Algorithms",
		Description: "Weekly sessions",
	})
	require.NoError(t, err)

	assert.Len(t, resp.JoinCode, joincode.Length)
	assert.Equal(t, int64(1), resp.Owner.ID)

	// the owner is enrolled by creation itself
	require.Len(t, resp.Members, 1)
	assert.Equal(t, int64(1), resp.Members[0].ID)
}

func TestGroupCreateRequiresStaff(t *testing.T) {
	f := newFixture()

	_, err := f.group.Create(context.Background(), userPrincipal(2), &dto.CreateGroupRequest{
		Name:        "Rogue",
		Description: "nope",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGroupJoin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{
		Name:        "Algorithms",
		Description: "Weekly sessions",
	})
	require.NoError(t, err)

	resp, err := f.group.Join(ctx, userPrincipal(2), created.JoinCode)
	require.NoError(t, err)
	assert.Len(t, resp.Members, 2)

	// the join code is never shown to a plain member
	assert.Empty(t, resp.JoinCode)
}

func TestGroupJoinIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{
		Name:        "Algorithms",
		Description: "Weekly sessions",
	})
	require.NoError(t, err)

	_, err = f.group.Join(ctx, userPrincipal(2), created.JoinCode)
	require.NoError(t, err)

	again, err := f.group.Join(ctx, userPrincipal(2), created.JoinCode)
	require.NoError(t, err)
	assert.Len(t, again.Members, 2)
}

func TestGroupJoinUnknownCode(t *testing.T) {
	f := newFixture()

	_, err := f.group.Join(context.Background(), userPrincipal(2), "zzzzzzzz")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGroupListIsScopedToMemberships(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{Name: "A", Description: "a"})
	require.NoError(t, err)
	_, err = f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{Name: "B", Description: "b"})
	require.NoError(t, err)

	_, err = f.group.Join(ctx, userPrincipal(2), first.JoinCode)
	require.NoError(t, err)

	owned, err := f.group.List(ctx, staffPrincipal(1), 1, 10)
	require.NoError(t, err)
	assert.Len(t, owned.Groups, 2)

	joined, err := f.group.List(ctx, userPrincipal(2), 1, 10)
	require.NoError(t, err)
	require.Len(t, joined.Groups, 1)
	assert.Equal(t, "A", joined.Groups[0].Name)

	none, err := f.group.List(ctx, userPrincipal(3), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, none.Groups)
}

func TestGroupUpdateOwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// a second staff user who does not own the group
	f.users.byID[4] = &models.User{ID: 4, Username: "staff2", Email: "s2@example.com", IsStaff: true}

	created, err := f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{Name: "A", Description: "a"})
	require.NoError(t, err)

	newName := "A renamed"
	_, err = f.group.Update(ctx, staffPrincipal(4), created.ID, &dto.UpdateGroupRequest{Name: &newName})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := f.group.Update(ctx, staffPrincipal(1), created.ID, &dto.UpdateGroupRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, resp.Name)
}

func TestGroupDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{Name: "A", Description: "a"})
	require.NoError(t, err)

	err = f.group.Delete(ctx, userPrincipal(2), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.group.Delete(ctx, staffPrincipal(1), created.ID))

	_, err = f.group.Get(ctx, staffPrincipal(1), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGroupGetVisibleToAnyAuthenticatedUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.group.Create(ctx, staffPrincipal(1), &dto.CreateGroupRequest{Name: "A", Description: "a"})
	require.NoError(t, err)

	resp, err := f.group.Get(ctx, userPrincipal(3), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Empty(t, resp.JoinCode)
}

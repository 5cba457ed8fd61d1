package fakeuserrepo

import (
	"sort"
	"sync"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users       map[int]*users.User
	usernameIDs map[string]int // username to user id
	nextID      int
	lock        sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:       make(map[int]*users.User),
		usernameIDs: make(map[string]int),
		nextID:      1,
	}
}

// Upsert assigns the next id to users without one
func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == 0 {
		if _, taken := ur.usernameIDs[user.Username]; taken {
			return errors.ErrUserExists
		}
		user.ID = ur.nextID
		ur.nextID++
	} else if user.ID >= ur.nextID {
		ur.nextID = user.ID + 1
	}
	if existing, ok := ur.users[user.ID]; ok && existing.Username != user.Username {
		delete(ur.usernameIDs, existing.Username)
	}
	ur.users[user.ID] = user
	ur.usernameIDs[user.Username] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByUsername(username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernameIDs[username]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return ur.users[id], nil
}

func (ur *FakeUserRepo) GetByID(id int) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func (ur *FakeUserRepo) List() ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.users))
	for _, v := range ur.users {
		userList = append(userList, v)
	}
	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})
	return userList, nil
}

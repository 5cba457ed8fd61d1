package users

type UserRepo interface {
	Upsert(user *User) error
	GetByUsername(username string) (*User, error)
	GetByID(id int) (*User, error)
	List() ([]*User, error)
}

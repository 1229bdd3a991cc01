package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	owner := &User{ID: 1, Role: RoleUser}
	stranger := &User{ID: 2, Role: RoleUser}
	moderator := &User{ID: 3, Role: RoleModerator}

	car := &Car{ID: 10, UserID: 1}

	assert.True(t, CanModify(owner, car))
	assert.False(t, CanModify(stranger, car))
	assert.True(t, CanModify(moderator, car))
}

func TestCanModifyNilActor(t *testing.T) {
	car := &Car{ID: 10, UserID: 1}
	assert.False(t, CanModify(nil, car))
}

func TestCanModifyNewsWithoutAuthor(t *testing.T) {
	// Author deleted: the row survives with a null author and only
	// moderators may touch it.
	orphan := &News{ID: 5, AuthorID: nil}

	user := &User{ID: 1, Role: RoleUser}
	moderator := &User{ID: 2, Role: RoleModerator}

	assert.False(t, CanModify(user, orphan))
	assert.True(t, CanModify(moderator, orphan))
}

func TestCanModifyComment(t *testing.T) {
	comment := &Comment{ID: 1, UserID: 7}

	assert.True(t, CanModify(&User{ID: 7, Role: RoleUser}, comment))
	assert.False(t, CanModify(&User{ID: 8, Role: RoleUser}, comment))
	assert.True(t, CanModify(&User{ID: 9, Role: RoleModerator}, comment))
}

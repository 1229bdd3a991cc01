package models

// Ownable is any resource with an owning user: the user for cars and
// comments, the author for news.
type Ownable interface {
	OwnerID() *uint
}

// CanModify is the single authorization gate for every mutating operation.
// Moderators may modify anything; everyone else only their own resources.
// A resource without an owner (news whose author was deleted) is only
// modifiable by moderators.
func CanModify(actor *User, resource Ownable) bool {
	if actor == nil {
		return false
	}
	if actor.IsModerator() {
		return true
	}
	owner := resource.OwnerID()
	return owner != nil && *owner == actor.ID
}

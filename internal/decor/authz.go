package decor

import "fmt"

const (
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Authorize decides whether requester may mutate the decoration. Updates are
// reserved for the placer; deletes are open to the placer and the owner of
// the post the decoration sits on. The verdict depends only on its inputs,
// never on storage.
func Authorize(d Decoration, requesterID uint, action string) error {
	switch action {
	case ActionUpdate:
		if requesterID == d.UserID {
			return nil
		}
		return fmt.Errorf("%w: only the placer can edit a decoration", ErrDenied)
	case ActionDelete:
		if requesterID == d.UserID || requesterID == d.PostOwnerID {
			return nil
		}
		return fmt.Errorf("%w: only the placer or the post owner can remove a decoration", ErrDenied)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrDenied, action)
	}
}

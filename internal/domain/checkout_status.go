package domain

type CheckoutStatus string

const (
	CheckoutStatusSelecting         CheckoutStatus = "selecting"
	CheckoutStatusCollectingContact CheckoutStatus = "collecting-contact"
	CheckoutStatusProcessing        CheckoutStatus = "processing"
	CheckoutStatusSuccess           CheckoutStatus = "success"
	CheckoutStatusError             CheckoutStatus = "error"
)

var checkoutTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusSelecting:         {CheckoutStatusCollectingContact},
	CheckoutStatusCollectingContact: {CheckoutStatusCollectingContact, CheckoutStatusProcessing, CheckoutStatusSelecting},
	CheckoutStatusProcessing:        {CheckoutStatusSuccess, CheckoutStatusError},
	CheckoutStatusSuccess:           {CheckoutStatusSelecting},
	CheckoutStatusError:             {CheckoutStatusSelecting},
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsSettled reports whether the attempt has finished and the next reopen resets it.
// The machine has no true terminal state.
func (s CheckoutStatus) IsSettled() bool {
	return s == CheckoutStatusSuccess || s == CheckoutStatusError
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

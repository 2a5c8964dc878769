package gesture

// Resolve maps a selector to an executable recognizer wired to onDismiss.
//
// It returns nil when no recognizer applies: for disabled selectors, for
// interactive selectors (drag-to-dismiss is driven by the drag state
// machine, which the compositing layer attaches instead), and for every
// variant except long-press on a press-only input profile.
func Resolve(profile InputProfile, sel Selector, onDismiss func()) Recognizer {
	if onDismiss == nil {
		onDismiss = func() {}
	}

	if profile == ProfilePressOnly {
		if sel.Kind == KindLongPress {
			return NewLongPress(sel.LongPressFor, onDismiss)
		}
		return nil
	}

	switch sel.Kind {
	case KindTap:
		return NewTap(onDismiss)
	case KindDoubleTap:
		return NewDoubleTap(onDismiss)
	case KindLongPress:
		return NewLongPress(sel.LongPressFor, onDismiss)
	case KindSwipeUp, KindSwipeDown, KindSwipeLeft, KindSwipeRight:
		dir, _ := sel.SwipeDirection()
		return NewSwipe(dir, onDismiss)
	case KindCustom:
		if sel.Recognizer == nil {
			return nil
		}
		return WithCompletion(sel.Recognizer, onDismiss)
	}
	return nil
}

// Package selection implements a selection group: a dropdown built from a
// select node holding a trigger and a group of options.
//
// The group owns three pieces of state: whether it is open, which option is
// selected, and which option holds focus while open. Selected and focused
// options are stored as node identifiers and resolved against the live
// option list, so a removed option simply resolves to none.
//
// Keyboard contract:
//
//   - Closed, ArrowUp/ArrowDown: select the previous/next eligible option,
//     wrapping, without opening. A change notification is emitted.
//   - Closed, Enter/Space: open.
//   - Open, ArrowUp/ArrowDown, Shift+Tab/Tab: move focus among eligible
//     options, wrapping. The selection does not change.
//   - Open, Home/End: focus the first/last eligible option.
//   - Open, Enter/Space: commit the focused option, close, focus the trigger.
//   - Open, Escape: close without committing, focus the trigger.
//
// An option is eligible when it is not disabled. The selected option is not
// excluded from open-state navigation.
//
// Markup:
//
//	select placeholder="Pick a fruit"
//	  trigger
//	  group
//	    option value="apple" (Apple)
//	    option value="pear" disabled (Pear)
//	    option value="plum" selected (Plum)
package selection

// Package input implements input controls built from a coordinator and one
// or more interchangeable interface renderers.
//
// A [Coordinator] is the single owner of an input's canonical value and
// flags. Interface variants ([Text], [Slider]) live under it, edit the value
// through their own interaction model, and talk back through a narrow
// [Reporter] handed to them when they attach:
//
//	interface --ReportChange/ReportFocus/ReportBlur--> coordinator
//	coordinator --SyncValue/SyncState--> every interface
//
// The coordinator turns reports into the externally visible notifications
// (input, focus, change, blur) dispatched from its node. While disabled or
// readonly it ignores ReportChange regardless of what an interface sends.
//
// A [Form] groups coordinators that live under a form node or name it
// through their form attribute.
package input

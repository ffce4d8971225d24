/*
Package backstack holds the navigation history that feeds a routing pool.

A BackStack is an ordered list of history elements; each element is a content routing
plus the overlays stacked on it. Only the last element's overlays are reachable, and
they are popped before the content underneath.

Operations are pure: Apply never modifies its input and IsApplicable tells a caller
whether the operation would change anything, so a back press can be handed to another
component when Pop is not applicable.
*/
package backstack

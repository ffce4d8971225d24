/*
Package scenario replays navigation scripts against a Router.

A scenario is a YAML document naming the initial configuration, optional permanent
configurations, node routes and transition timing, followed by steps:

	name: back-during-push
	initial: {name: Home}
	transition: {duration: 40ms, frame: 10ms}
	steps:
	  - op: push
	    configuration: {name: Details, params: {id: 42}}
	  - op: frames
	    count: 1
	  - op: pop
	  - op: settle
	  - op: expect
	    back_stack: [Home]
	    views: [Home]

Step arguments are decoded with mapstructure, so scalar params may be written
unquoted. Frames advance the host loop and the transition driver together.
*/
package scenario

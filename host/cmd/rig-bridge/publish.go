package main

import (
	"axisrig/core"
	"axisrig/protocol"
	"axisrig/remote"
)

// publishTo forwards snapshots to the hub *h points at once it exists
func publishTo(h **remote.Hub) core.Observer {
	return core.ObserverFunc(func(s protocol.Snapshot) {
		if *h != nil {
			(*h).Publish(s)
		}
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime notifies subscribers of row changes.

The store publishes a Change after every committed write:

	broker.Publish(realtime.Change{Table: "event", Op: realtime.OpInsert, Record: ev})

Clients subscribe per table and must call the returned function when done:

	changes, unsubscribe := broker.Subscribe("event")
	defer unsubscribe()

Publish never blocks. A subscriber that falls more than its buffer behind
misses changes.
*/
package realtime

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session keeps each device's answers in memory and persists them.

# State

Manager.State returns the device's State, restoring the saved answer array
the first time the device is seen. If storage cannot be read, later calls
retry, and no write happens until the saved array has been loaded:

	st := sessions.State(ctx, deviceID)
	_ = st.SetAnswer(12, 3)
	sessions.SchedulePersist(deviceID)

# Debounced Writes

SchedulePersist does not write right away. It (re)starts a 500ms quiet
period; when the device stops answering, one write stores the latest
answers and a metadata stamp under sgq.v1.answers and sgq.v1.meta. Only the
most recent pending write survives.

Flush forces every pending write and is called on shutdown. Clear waits for
a write in progress and drops any write queued behind it.

# Failures

Storage errors never end the session. They are logged and queued as a
notice on the State, and the answers stay in memory.
*/
package session

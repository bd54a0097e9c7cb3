package querycache

import (
	"fmt"
)

// Query key layout. List keys embed their filter parameters after the
// prefix, so invalidation works on prefixes.
const (
	PrefixEventLists    = "events:"
	PrefixEventDetail   = "event:"
	PrefixRosters       = "roster:"
	KeyPopularEvents    = "events:popular"
	KeyAvailableFilters = "events:filters"
	KeyMyEvents         = "events:mine"
	KeyMyParticipations = "participations:mine"
	KeyAdminUsers       = "admin:users"
	KeyAdminStats       = "admin:stats"
)

func EventKey(eventID uint) string {
	return fmt.Sprintf("%s%d", PrefixEventDetail, eventID)
}

func EventListKey(params string) string {
	return PrefixEventLists + "list:" + params
}

func TimeseriesKey(period string) string {
	return KeyAdminStats + ":timeseries:" + period
}

func EventFilesKey(eventID uint) string {
	return fmt.Sprintf("event-files:%d", eventID)
}

func RosterKey(eventID uint) string {
	return fmt.Sprintf("%s%d", PrefixRosters, eventID)
}

// Dispatcher maps the resource identifiers a mutation reports to the
// cache keys that must be dropped. Mutating call sites never touch the
// cache directly.
type Dispatcher struct {
	cache *Cache
}

func NewDispatcher(cache *Cache) *Dispatcher {
	return &Dispatcher{cache: cache}
}

// EventMutated handles create, update and delete of an event: the
// detail read and every list the event may appear in go stale.
func (d *Dispatcher) EventMutated(eventID uint) {
	if eventID != 0 {
		d.cache.Drop(EventKey(eventID))
		d.cache.Drop(RosterKey(eventID))
		d.cache.Drop(EventFilesKey(eventID))
	}
	d.cache.DropPrefix(PrefixEventLists)
	d.cache.DropPrefix(KeyAdminStats)
}

// ParticipationMutated handles join and leave: spot counts on the event
// and on the lists change, as does the caller's participation list.
func (d *Dispatcher) ParticipationMutated(eventID uint) {
	d.cache.Drop(EventKey(eventID))
	d.cache.Drop(RosterKey(eventID))
	d.cache.DropPrefix(PrefixEventLists)
	d.cache.Drop(KeyMyParticipations)
	d.cache.DropPrefix(KeyAdminStats)
}

// ProfileMutated handles profile edits and login/logout transitions.
// Event payloads are identity-scoped: details and lists are fetched
// with the session's bearer token and carry is_participating flags and
// embedded participations for that identity, so an identity change
// drops them all. Aggregate stats stay; they describe no one user.
func (d *Dispatcher) ProfileMutated() {
	d.cache.Drop(KeyAdminUsers)
	d.cache.Drop(KeyMyParticipations)
	d.cache.DropPrefix(PrefixEventLists)
	d.cache.DropPrefix(PrefixEventDetail)
	d.cache.DropPrefix(PrefixRosters)
}

// FileMutated handles uploads and deletions attached to an event.
func (d *Dispatcher) FileMutated(eventID uint) {
	if eventID != 0 {
		d.cache.Drop(EventFilesKey(eventID))
		d.cache.Drop(EventKey(eventID))
	}
}

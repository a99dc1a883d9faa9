// Package timezone pins every timestamp the service writes or renders to
// the zone named by APP_TIMEZONE (an IANA name such as "Asia/Jakarta").
// Unknown or empty names fall back to UTC.
//
//	entry := timezone.Now()
//	shown := timezone.Format(booking.EntryTime, constant.DateFormat)
package timezone

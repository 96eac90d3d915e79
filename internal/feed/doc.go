// Package feed fetches the event feed and geocode cache documents and decodes
// feed records.
//
// Resources are addressed either by http(s) URL or by local file path. The
// feed is a JSON array of structured records ({title, location, date, text,
// lat, lon}); arrays of raw wall posts ({text} only) and the wall.get
// response envelope are accepted too and are run through the post grammar
// in ExtractPost. HTML markup in descriptions is flattened to plain text.
package feed

// Package joplin is a client for the data API served by a running
// Joplin desktop application (the "web clipper service", default
// http://localhost:41184).
//
// The API is documented at https://joplinapp.org/api/references/rest_api/.
// This package covers notes, notebooks, tags, resources, revisions,
// events, search and ping, with transparent unpagination through the
// All* methods.
//
// Minimal usage:
//
//	client, err := joplin.New(joplin.Config{Token: os.Getenv("JOPLIN_TOKEN")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	notes, err := client.AllNotes(ctx, nil, &joplin.ListOptions{
//	    Fields: []string{"id", "title", "body"},
//	})
//
// Write operations take property structs with pointer fields; only set
// fields go on the wire, so updates stay partial:
//
//	err = client.UpdateNote(ctx, id, &joplin.NoteProperties{
//	    Title: joplin.Ptr("new title"),
//	})
package joplin

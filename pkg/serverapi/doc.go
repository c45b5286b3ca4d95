// Package serverapi is a client for the experimental sync API of
// Joplin Server. It speaks the version-3 sync target format: items are
// serialized text files in a flat directory, resources carry a
// separate binary blob, and every item operation must hold a sync
// lock.
//
//	client, err := serverapi.New(serverapi.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	ctx := context.Background()
//	if err := client.Connect(ctx); err != nil {
//		log.Fatal(err)
//	}
//	err = client.WithSyncLock(ctx, func(ctx context.Context) error {
//		id, err := client.CreateNotebook(ctx, &joplin.Notebook{Title: "inbox"})
//		if err != nil {
//			return err
//		}
//		_, err = client.CreateNote(ctx, &joplin.Note{ParentID: id, Title: "hello"})
//		return err
//	})
//
// The API is experimental upstream; expect the desktop data API
// (package joplin) to be the stable surface.
package serverapi

// Package unidesk provides a Go client for the unidesk HTTP API:
// a retrieval-augmented question answering service for university
// information desks.
//
//	client, _ := unidesk.New("http://localhost:8080",
//	    unidesk.WithAPIKey(os.Getenv("UNIDESK_API_KEY")),
//	)
//	res, err := client.Chat(ctx, "Học phí kỳ này bao nhiêu?", nil)
//	if res.Refused {
//	    // out-of-domain question, res.Suggestions holds redirects
//	}
//
// Administrative operations mirror the API error contract: a rebuild
// against a locked index returns ErrIndexLocked, querying a torn-down
// index returns ErrIndexAbsent. Check with errors.Is().
package unidesk

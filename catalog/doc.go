// Package catalog provides a client for the Watchmode title catalog API.
//
// The client covers the two request shapes titlewatch needs: listing title IDs
// for a category and fetching the details of a single title. Responses are
// parsed into immutable TitleSummary and TitleDetails records.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := catalog.NewClient(
//		"https://api.watchmode.com/v1",
//		"your-api-key",
//		logger,
//		catalog.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	titles, err := client.ListTitles(ctx, catalog.CategoryMovie, 15)
//
// # Error Handling
//
// Every failure is returned as an *Error carrying one of four kinds:
//
//   - KindInvalidRequest: parameters could not form a request; nothing was sent
//   - KindTransport: the round trip itself failed (including cancellation)
//   - KindServerStatus: the API answered with a status outside 200-299
//   - KindDecode: the body did not have the expected shape
//
// Use KindOf and StatusCode to classify errors without type assertions:
//
//	if catalog.KindOf(err) == catalog.KindServerStatus {
//		fmt.Println("server said", catalog.StatusCode(err))
//	}
//
// The client never retries and never caches; each call is one round trip.
package catalog

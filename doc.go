// Package netsuite provides a native Go client for the NetSuite SuiteTalk
// SOAP web service.
//
// # Features
//
//   - One accessor per record type, plus Client.Records for any other type
//   - Modern Go 1.25+ iterators for paged search results
//   - Typed errors for precise error handling
//   - Functional options and file/environment configuration
//   - Token-based or legacy passport authentication
//   - Structured logging with zap and optional Prometheus call metrics
//
// # Quick Start
//
//	client, err := netsuite.NewClient(
//	    netsuite.WithAccount("1234567_SB1"),
//	    netsuite.WithTokenAuth(consumerKey, consumerSecret, tokenID, tokenSecret),
//	    netsuite.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vendor, err := client.Vendors.Get(ctx, "1234", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(vendor.GetString("companyName"))
//
// Settings can also come from a file and NETSUITE_* environment variables:
//
//	cfg, err := netsuite.LoadConfig("netsuite.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := netsuite.NewClient(cfg.Options()...)
//
// # Error Handling
//
// Every failure reported by the service is a *RemoteCallError, or one of the
// more specific types that errors.As also matches as *RemoteCallError:
//
//	contact, err := client.Contacts.Get(ctx, "", "crm-42")
//	if err != nil {
//	    var notFound *netsuite.NotFoundError
//	    if errors.As(err, &notFound) {
//	        // Handle not found
//	    }
//	}
//
// Arguments rejected before any remote call produce *ValidationError.
//
// # Pagination
//
// GetAll and SearchWith return slices. For large record sets, iterate page by
// page:
//
//	for page, err := range client.Customers.GetAllGenerator(ctx, 100) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, customer := range page {
//	        // ...
//	    }
//	}
//
//	// Or move between pages explicitly
//	ps := client.Customers.NewPaginatedSearch(100, criteria)
//	if err := ps.GotoPage(ctx, 3); err != nil {
//	    var invalid *netsuite.InvalidPageError
//	    // ...
//	}
package netsuite

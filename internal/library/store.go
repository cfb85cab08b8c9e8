// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import "context"

// Repository defines the data access contract for the access ledger.
type Repository interface {

	/*
		Touch creates or refreshes the access record for a (user, book) pair.

		Parameters:
		  - context: context.Context
		  - record: AccessRecord

		Returns:
		  - error: Persistence failures
	*/
	Touch(context context.Context, record AccessRecord) error

	/*
		ListRecent returns the user's books, most recently accessed first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Entry: Possibly empty, never nil
		  - error: Database retrieval failures
	*/
	ListRecent(context context.Context, userID string) ([]Entry, error)
}

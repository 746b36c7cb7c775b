package store

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NotFound reports whether a Firestore read failed because the document does
// not exist, as opposed to a transport or permission fault. Point reads that
// gate booking decisions must not treat an outage as an absent record.
func NotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

package sync

import "github.com/iudanet/flashsync/internal/models"

// NextSeq allocates the server_seq stamped on every record of an incoming batch.
//
// The base is the highest server_seq among the changes the resolver returned
// for this request; when there are none the client's checkpoint is the base.
// The result is base+1, so it is greater than every returned server_seq and
// greater than the checkpoint. Because the read and the write happen in the
// same transaction, it is also greater than every server_seq in the store.
func NextSeq(remote []models.Change, checkpoint int64) int64 {
	base := checkpoint
	if len(remote) > 0 {
		base = remote[0].Record.Seq()
		for _, change := range remote[1:] {
			base = max(base, change.Record.Seq())
		}
	}

	return base + 1
}

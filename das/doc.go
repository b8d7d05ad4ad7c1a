/*
Package das contains logic for running data availability sampling (DAS)
routines on block headers in the network. DAS is the process of verifying the
availability of block data by sampling chunks or shares of those blocks.

The central component of this package is the `samplingCoordinator`. It launches
parallel workers that perform DAS on new ExtendedHeaders in the network. The
DASer kicks off this loop by loading its last DASed headers snapshot
(`checkpoint`) and kicking off a worker pool to DAS all headers between the
checkpoint and the current network head. It subscribes to notifications about
new ExtendedHeaders, received via gossipsub. Newly found headers are put into a
higher priority queue and will be sampled by the next available worker. Heights
that failed to sample are retried with exponential backoff.

If sampling proves that the data behind a header is broken, the DASer hands a
BadEncodingProof over to the fraud service and the node shuts sampling and
syncing down.
*/
package das

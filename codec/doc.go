/*
Package codec packs settlement batches into the exact byte sequence the proof
is bound to, and computes the commitment over it.

The buffer starts with the trading-history root transition, two 32-byte
big-endian values, followed by one 37-byte record per leg, rings in batch
order and the first leg before the second:

	field           | bytes
	----------------|------
	dexID           |   2
	orderID         |   2
	fromSellAccount |   3
	toBuyAccount    |   3
	sellAmount      |  12
	fromFeeAccount  |   3
	feeAmount       |  12

All fields are big-endian unsigned, zero-padded to their width. There are no
delimiters: the widths alone define the boundaries, and the settlement
circuit holds the same table, so any change here must be coordinated with
it. A value that does not fit its width is a hard error, never truncated; a
silently clamped buffer would commit to a settlement that never happened.
*/
package codec

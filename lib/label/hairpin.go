//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package label

import "fmt"

const (
	rankWidth    = 4
	rankUnlisted = 100
)

// hairpinRanks follows the physical path through the extended variable arm:
// 5' strand e11-e17, loop e1-e5, 3' strand e27-e21.
var hairpinRanks = map[int]int{
	11: 1, 12: 2, 13: 3, 14: 4, 15: 5, 16: 6, 17: 7,
	1: 8, 2: 9, 3: 10, 4: 11, 5: 12,
	27: 13, 26: 14, 25: 15, 24: 16, 23: 17, 22: 18, 21: 19,
}

// HairpinRank returns the 5'->3' rank of extension token eK. Tokens
// missing from the table rank after every listed token, by number.
func HairpinRank(k int) int {
	if r, ok := hairpinRanks[k]; ok {
		return r
	}
	return rankUnlisted + k
}

func padRank(r int) string {
	return fmt.Sprintf("%0*d", rankWidth, r)
}

/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package version

/*
VERSION is the version of MistQL-Go.
*/
const VERSION = "0.1"

/*
REV is the revision of MistQL-Go.
*/
const REV = "0"

// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/svj/nbeconnect/internal/logging"

func dbLogf(format string, v ...any) {
	logging.Debugf(format, v...)
}

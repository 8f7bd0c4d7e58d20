// Package kernel is a small client for the SiYuan kernel HTTP API.
//
// The bootstrap uses it to read the kernel version when it is not configured
// and to surface version problems to the user as kernel notifications.
//
// # Endpoints
//
//   - POST /api/system/version
//   - POST /api/notification/pushMsg
//   - POST /api/notification/pushErrMsg
//
// Every response carries the kernel envelope {"code": 0, "msg": "", "data": ...};
// a non-zero code is returned as an *APIError.
package kernel

package random

import (
	"crypto/rand"
	"math/big"
	"time"
)

// accessCodeCharset 访问码字符集：大写字母 + 数字
const accessCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetAccessCode 生成指定长度的房间访问码（大写字母数字混合）
func GetAccessCode(length int) string {
	result := make([]byte, length)
	charsetLen := big.NewInt(int64(len(accessCodeCharset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			result[i] = 'X'
			continue
		}
		result[i] = accessCodeCharset[n.Int64()]
	}
	return string(result)
}

// GetNowAndLenRandomString 生成带时间戳前缀的随机字符串（用于用户 UUID）
// 格式: YYMMDD + 字母数字混合
// 示例: 241230AbCdE1234567
func GetNowAndLenRandomString(length int) string {
	result := make([]byte, length)
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	charsetLen := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			result[i] = 'x'
			continue
		}
		result[i] = charset[n.Int64()]
	}
	return time.Now().Format("060102") + string(result)
}

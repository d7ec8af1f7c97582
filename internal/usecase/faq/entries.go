package faq

import "regexp"

// entry is one canned question/answer pair. Keywords are stored in normalized
// form and matched as substrings of the normalized question.
type entry struct {
	question string
	keywords []string
	answer   string
}

// entries is the compiled-in FAQ table. A question must cover at least
// matchThreshold of an entry's keywords to hit, so specific questions
// ("học phí ngành X năm 2025") still reach retrieval.
var entries = []entry{
	{
		question: "Làm thế nào để liên hệ với nhà trường?",
		keywords: []string{"liên hệ", "hotline"},
		answer: "Bạn có thể liên hệ nhà trường qua hotline tuyển sinh hoặc email hỗ trợ " +
			"được công bố trên trang chủ. Trong giờ hành chính, phòng Hành chính - Tổng hợp " +
			"trực tiếp nhận câu hỏi tại cơ sở chính.",
	},
	{
		question: "Đăng ký học phần ở đâu?",
		keywords: []string{"đăng ký học phần", "cổng sinh viên"},
		answer: "Sinh viên đăng ký học phần trên cổng thông tin sinh viên bằng tài khoản " +
			"được cấp khi nhập học. Nếu quên mật khẩu, liên hệ phòng Đào tạo để cấp lại.",
	},
	{
		question: "Xem thời khóa biểu ở đâu?",
		keywords: []string{"xem thời khóa biểu", "tra cứu lịch học"},
		answer: "Thời khóa biểu được cập nhật trên cổng thông tin sinh viên trước mỗi học kỳ. " +
			"Đăng nhập bằng tài khoản sinh viên và chọn mục Thời khóa biểu để xem chi tiết.",
	},
	{
		question: "Nộp học phí bằng cách nào?",
		keywords: []string{"nộp học phí", "đóng học phí"},
		answer: "Học phí nộp qua chuyển khoản ngân hàng theo hướng dẫn trên cổng thông tin " +
			"sinh viên hoặc trực tiếp tại phòng Tài chính - Kế toán. Ghi rõ mã sinh viên " +
			"trong nội dung chuyển khoản.",
	},
	{
		question: "Trường có ký túc xá không?",
		keywords: []string{"ký túc xá", "nội trú"},
		answer: "Trường có ký túc xá cho sinh viên với mức phí công bố từng năm học. " +
			"Đăng ký chỗ ở tại ban quản lý ký túc xá ngay sau khi nhập học.",
	},
}

// greetingAnswer is returned for any greeting without touching retrieval.
const greetingAnswer = "Xin chào! Mình là trợ lý ảo của nhà trường. " +
	"Bạn có thể hỏi mình về tuyển sinh, học phí, ngành đào tạo, thời khóa biểu " +
	"và các thông tin khác của trường."

// greetingPatterns match on the normalized (lowercased, NFC) question.
var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(xin )?chào( bạn| anh| chị| em)?[!. ]*$`),
	regexp.MustCompile(`^(hi|hello|hey)[!. ]*$`),
	regexp.MustCompile(`^chào buổi (sáng|chiều|tối)[!. ]*$`),
}
